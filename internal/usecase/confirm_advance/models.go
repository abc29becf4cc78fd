package confirm_advance

import (
	"time"

	"github.com/looklab/LookLab-BookingService/internal/domain"
	"github.com/looklab/LookLab-BookingService/pkg/types"
)

// Request модель запроса подтверждения авансового платежа.
// Приходит из completion-callback шлюза; доставка может повторяться,
// поэтому обработка идемпотентна по OrderID.
type Request struct {
	OrderID   string
	PaymentID string
	Signature string

	// bookingData из callback
	UserID    int64
	ServiceID int64
	Date      time.Time
	TimeLabel types.TimeString
	Notes     *string
	StyleRef  *string
}

// Response результат подтверждения
type Response struct {
	Booking *domain.Booking

	// AlreadyProcessed true, если заказ уже был обработан ранее -
	// повторная доставка вернула исходный результат без изменений
	AlreadyProcessed bool
}
