package initiate_booking

import (
	"time"

	"github.com/looklab/LookLab-BookingService/pkg/types"
)

// Request модель запроса на инициацию бронирования
type Request struct {
	UserID    int64
	ServiceID int64
	Date      time.Time        // Дата бронирования (без времени)
	TimeLabel types.TimeString // Метка слота, например "14:00"
}

// Response заказ на авансовый платеж.
// Ни строки бронирования, ни резервации слота на этом шаге не существует -
// только внешний платежный заказ.
type Response struct {
	OrderID       string
	Amount        int64 // сумма заказа (аванс), minor units
	Currency      string
	TotalAmount   int64
	AdvanceAmount int64
	BalanceAmount int64
}
