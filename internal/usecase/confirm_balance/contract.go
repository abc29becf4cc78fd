package confirm_balance

import (
	"context"

	"github.com/looklab/LookLab-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByBalanceOrderID(ctx context.Context, orderID string) (*domain.Booking, error)
	CompleteWithBalancePayment(ctx context.Context, orderID, paymentID string) error
}

// PaymentGateway интерфейс платежного шлюза
type PaymentGateway interface {
	VerifySignature(orderID, paymentID, signature string) bool
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
