package confirm_balance

import "errors"

var (
	ErrInvalidInput        = errors.New("confirm_balance: invalid input")
	ErrPaymentVerification = errors.New("confirm_balance: payment signature verification failed")
	ErrOrderNotFound       = errors.New("confirm_balance: order not found")
	ErrInvalidTransition   = errors.New("confirm_balance: booking is not awaiting balance payment")
	ErrInternal            = errors.New("confirm_balance: internal error")
)
