package request_balance

import (
	"context"

	requestBalance "github.com/looklab/LookLab-BookingService/internal/usecase/request_balance"
)

type RequestBalanceUseCase interface {
	Execute(ctx context.Context, req *requestBalance.Request) (*requestBalance.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
