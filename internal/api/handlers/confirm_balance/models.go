package confirm_balance

import (
	"time"

	"github.com/looklab/LookLab-BookingService/internal/domain"
	confirmBalance "github.com/looklab/LookLab-BookingService/internal/usecase/confirm_balance"
)

// ConfirmBalanceRequest HTTP request model: completion-callback платежного шлюза
type ConfirmBalanceRequest struct {
	OrderID   string `json:"razorpayOrderId"`
	PaymentID string `json:"razorpayPaymentId"`
	Signature string `json:"razorpaySignature"`
}

// ConfirmBalanceResponse HTTP response model
type ConfirmBalanceResponse struct {
	Booking          *BookingResponse `json:"booking"`
	AlreadyProcessed bool             `json:"alreadyProcessed,omitempty"`
}

// BookingResponse завершенное бронирование
type BookingResponse struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"userId"`
	ServiceID     int64   `json:"serviceId"`
	BookingDate   string  `json:"bookingDate"`
	TimeLabel     string  `json:"timeLabel"`
	Status        string  `json:"status"`
	TotalAmount   int64   `json:"totalAmount"`
	AdvanceAmount int64   `json:"advanceAmount"`
	BalanceAmount int64   `json:"balanceAmount"`
	ServiceName   string  `json:"serviceName"`
	CompletedAt   *string `json:"completedAt,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmBalance.Response) *ConfirmBalanceResponse {
	b := resp.Booking
	out := &BookingResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		ServiceID:     b.ServiceID,
		BookingDate:   b.BookingDate.Format(domain.DateFormat),
		TimeLabel:     b.TimeLabel.String(),
		Status:        string(b.Status),
		TotalAmount:   b.TotalAmount,
		AdvanceAmount: b.AdvanceAmount,
		BalanceAmount: b.BalanceAmount,
		ServiceName:   b.ServiceName,
	}
	if b.CompletedAt != nil {
		completed := b.CompletedAt.Format(time.RFC3339)
		out.CompletedAt = &completed
	}

	return &ConfirmBalanceResponse{
		Booking:          out,
		AlreadyProcessed: resp.AlreadyProcessed,
	}
}
