package get_admin_stats

import (
	"context"

	"github.com/looklab/LookLab-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	Stats(ctx context.Context, req *models.ListBookingsRequest) (*models.StatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
