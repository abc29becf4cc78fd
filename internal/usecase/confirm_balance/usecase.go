package confirm_balance

import (
	"context"
	"errors"
	"fmt"

	"github.com/looklab/LookLab-BookingService/internal/domain"
	bookingstore "github.com/looklab/LookLab-BookingService/internal/infra/storage/booking"
)

// UseCase проверяет подпись доплаты и переводит бронирование
// в финальный статус Completed. Повторное подтверждение того же
// заказа возвращает уже завершенное бронирование без изменений.
type UseCase struct {
	bookings BookingRepository
	gateway  PaymentGateway
	logger   Logger
}

func NewUseCase(bookings BookingRepository, gateway PaymentGateway, logger Logger) *UseCase {
	return &UseCase{
		bookings: bookings,
		gateway:  gateway,
		logger:   logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		return nil, fmt.Errorf("%w: Execute - order id, payment id and signature are required", ErrInvalidInput)
	}

	// Подпись проверяется до любых изменений состояния: неподписанный
	// колбэк не должен оставлять следов в БД.
	if !uc.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		uc.logger.Warn("ConfirmBalance: signature mismatch for order=%s", req.OrderID)
		return nil, fmt.Errorf("%w: Execute - order %s", ErrPaymentVerification, req.OrderID)
	}

	booking, err := uc.bookings.GetByBalanceOrderID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, bookingstore.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: Execute - order %s", ErrOrderNotFound, req.OrderID)
		}
		uc.logger.Error("ConfirmBalance: failed to get booking for order=%s: %v", req.OrderID, err)
		return nil, fmt.Errorf("%w: Execute - get booking: %v", ErrInternal, err)
	}

	if booking.Status == domain.StatusCompleted {
		uc.logger.Info("ConfirmBalance: order=%s already processed, booking id=%d completed", req.OrderID, booking.ID)
		return &Response{Booking: booking, AlreadyProcessed: true}, nil
	}

	if err := uc.bookings.CompleteWithBalancePayment(ctx, req.OrderID, req.PaymentID); err != nil {
		if errors.Is(err, bookingstore.ErrNotInExpectedStatus) {
			// Конкурирующий колбэк успел завершить бронирование первым.
			refetched, refetchErr := uc.bookings.GetByBalanceOrderID(ctx, req.OrderID)
			if refetchErr == nil && refetched.Status == domain.StatusCompleted {
				return &Response{Booking: refetched, AlreadyProcessed: true}, nil
			}
			return nil, fmt.Errorf("%w: Execute - booking %d is in status %q", ErrInvalidTransition, booking.ID, booking.Status)
		}
		uc.logger.Error("ConfirmBalance: failed to complete booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: Execute - complete booking: %v", ErrInternal, err)
	}

	completed, err := uc.bookings.GetByBalanceOrderID(ctx, req.OrderID)
	if err != nil {
		uc.logger.Error("ConfirmBalance: reload failed for order=%s: %v", req.OrderID, err)
		return nil, fmt.Errorf("%w: Execute - reload booking: %v", ErrInternal, err)
	}

	uc.logger.Info("ConfirmBalance: booking id=%d completed, balance payment=%s", completed.ID, req.PaymentID)

	return &Response{Booking: completed}, nil
}
