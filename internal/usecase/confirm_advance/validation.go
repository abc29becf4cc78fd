package confirm_advance

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OrderID == "" {
		return fmt.Errorf("%w: orderID is required", ErrInvalidInput)
	}

	if req.PaymentID == "" {
		return fmt.Errorf("%w: paymentID is required", ErrInvalidInput)
	}

	if req.Signature == "" {
		return fmt.Errorf("%w: signature is required", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.TimeLabel.IsZero() {
		return fmt.Errorf("%w: timeLabel is required", ErrInvalidInput)
	}

	if err := req.TimeLabel.Validate(); err != nil {
		return fmt.Errorf("%w: invalid timeLabel format: %v", ErrInvalidInput, err)
	}

	return nil
}
