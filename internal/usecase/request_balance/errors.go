package request_balance

import "errors"

var (
	ErrInvalidInput      = errors.New("request_balance: invalid input")
	ErrBookingNotFound   = errors.New("request_balance: booking not found")
	ErrAccessDenied      = errors.New("request_balance: access denied")
	ErrInvalidTransition = errors.New("request_balance: booking is not awaiting balance payment")
	ErrNothingDue        = errors.New("request_balance: no balance due")
	ErrGateway           = errors.New("request_balance: payment gateway error")
	ErrInternal          = errors.New("request_balance: internal error")
)
