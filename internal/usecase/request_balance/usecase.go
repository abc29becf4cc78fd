package request_balance

import (
	"context"
	"errors"
	"fmt"

	"github.com/looklab/LookLab-BookingService/internal/domain"
	bookingstore "github.com/looklab/LookLab-BookingService/internal/infra/storage/booking"
)

// UseCase запрашивает у платежного шлюза заказ на доплату (20%)
// за уже оказанную услугу и привязывает его к бронированию.
type UseCase struct {
	bookings BookingRepository
	gateway  PaymentGateway
	logger   Logger
	currency string
}

func NewUseCase(bookings BookingRepository, gateway PaymentGateway, logger Logger, currency string) *UseCase {
	return &UseCase{
		bookings: bookings,
		gateway:  gateway,
		logger:   logger,
		currency: currency,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.BookingID <= 0 || req.UserID <= 0 {
		return nil, fmt.Errorf("%w: Execute - booking id and user id must be positive", ErrInvalidInput)
	}

	booking, err := uc.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingstore.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: Execute - booking %d", ErrBookingNotFound, req.BookingID)
		}
		uc.logger.Error("RequestBalance: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Execute - get booking: %v", ErrInternal, err)
	}

	if booking.UserID != req.UserID {
		uc.logger.Warn("RequestBalance: access denied for user=%d to booking id=%d", req.UserID, req.BookingID)
		return nil, fmt.Errorf("%w: Execute - booking %d belongs to another user", ErrAccessDenied, req.BookingID)
	}

	if booking.Status != domain.StatusServiceDone {
		return nil, fmt.Errorf("%w: Execute - booking %d is in status %q", ErrInvalidTransition, req.BookingID, booking.Status)
	}

	if !booking.BalanceDue() {
		return nil, fmt.Errorf("%w: Execute - booking %d", ErrNothingDue, req.BookingID)
	}
	due := booking.BalanceAmount

	order, err := uc.gateway.CreateOrder(ctx, due, uc.currency)
	if err != nil {
		uc.logger.Error("RequestBalance: failed to create balance order for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Execute - create order: %v", ErrGateway, err)
	}

	// Повторный запрос заменяет ранее выданный заказ: оплачен может
	// быть только последний, старый заказ остается неоплаченным на
	// стороне шлюза.
	if err := uc.bookings.SetBalanceOrder(ctx, req.BookingID, order.ID); err != nil {
		if errors.Is(err, bookingstore.ErrNotInExpectedStatus) {
			return nil, fmt.Errorf("%w: Execute - booking %d changed status", ErrInvalidTransition, req.BookingID)
		}
		uc.logger.Error("RequestBalance: failed to attach order=%s to booking id=%d: %v", order.ID, req.BookingID, err)
		return nil, fmt.Errorf("%w: Execute - set balance order: %v", ErrInternal, err)
	}

	uc.logger.Info("RequestBalance: balance order=%s created for booking id=%d, amount=%d", order.ID, req.BookingID, due)

	return &Response{
		OrderID:  order.ID,
		Amount:   due,
		Currency: order.Currency,
	}, nil
}
