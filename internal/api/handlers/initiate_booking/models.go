package initiate_booking

import (
	"time"

	"github.com/looklab/LookLab-BookingService/internal/domain"
	initiateBooking "github.com/looklab/LookLab-BookingService/internal/usecase/initiate_booking"
	"github.com/looklab/LookLab-BookingService/pkg/types"
)

// InitiateBookingRequest HTTP request model
type InitiateBookingRequest struct {
	ServiceID   int64  `json:"serviceId"`
	BookingDate string `json:"bookingDate"` // "2025-10-15"
	TimeLabel   string `json:"timeLabel"`   // "14:00"
}

// AdvanceOrderResponse HTTP response model: заказ на авансовый платеж
type AdvanceOrderResponse struct {
	OrderID       string `json:"orderId"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	TotalAmount   int64  `json:"totalAmount"`
	AdvanceAmount int64  `json:"advanceAmount"`
	BalanceAmount int64  `json:"balanceAmount"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *InitiateBookingRequest) ToUseCaseRequest(userID int64) (*initiateBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	timeLabel, err := types.NewTimeStringFromString(r.TimeLabel)
	if err != nil {
		return nil, err
	}

	return &initiateBooking.Request{
		UserID:    userID,
		ServiceID: r.ServiceID,
		Date:      bookingDate,
		TimeLabel: timeLabel,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *initiateBooking.Response) *AdvanceOrderResponse {
	return &AdvanceOrderResponse{
		OrderID:       resp.OrderID,
		Amount:        resp.Amount,
		Currency:      resp.Currency,
		TotalAmount:   resp.TotalAmount,
		AdvanceAmount: resp.AdvanceAmount,
		BalanceAmount: resp.BalanceAmount,
	}
}
