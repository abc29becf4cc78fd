package confirm_balance

import (
	"context"

	confirmBalance "github.com/looklab/LookLab-BookingService/internal/usecase/confirm_balance"
)

type ConfirmBalanceUseCase interface {
	Execute(ctx context.Context, req *confirmBalance.Request) (*confirmBalance.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
