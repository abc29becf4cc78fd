package confirm_advance

import (
	"context"

	confirmAdvance "github.com/looklab/LookLab-BookingService/internal/usecase/confirm_advance"
)

type ConfirmAdvanceUseCase interface {
	Execute(ctx context.Context, req *confirmAdvance.Request) (*confirmAdvance.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
