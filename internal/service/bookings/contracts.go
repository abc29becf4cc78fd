package bookings

import (
	"context"

	"github.com/looklab/LookLab-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	ListWithFilter(ctx context.Context, filter domain.LedgerFilter) ([]*domain.Booking, error)
	MarkServiceDone(ctx context.Context, id int64) error
	Cancel(ctx context.Context, id int64, reason string) error
	Stats(ctx context.Context, filter domain.LedgerFilter) (*domain.BookingStats, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
