package confirm_advance

import (
	"time"

	"github.com/looklab/LookLab-BookingService/internal/domain"
	confirmAdvance "github.com/looklab/LookLab-BookingService/internal/usecase/confirm_advance"
	"github.com/looklab/LookLab-BookingService/pkg/types"
)

// ConfirmAdvanceRequest HTTP request model: completion-callback платежного шлюза
type ConfirmAdvanceRequest struct {
	OrderID   string `json:"razorpayOrderId"`
	PaymentID string `json:"razorpayPaymentId"`
	Signature string `json:"razorpaySignature"`

	ServiceID   int64   `json:"serviceId"`
	BookingDate string  `json:"bookingDate"` // "2025-10-15"
	TimeLabel   string  `json:"timeLabel"`   // "14:00"
	Notes       *string `json:"notes,omitempty"`
	StyleRef    *string `json:"styleRef,omitempty"`
}

// ConfirmAdvanceResponse HTTP response model
type ConfirmAdvanceResponse struct {
	Booking          *BookingResponse `json:"booking"`
	AlreadyProcessed bool             `json:"alreadyProcessed,omitempty"`
}

// BookingResponse подтвержденное бронирование
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
	Notes         *string `json:"notes,omitempty"`
	StyleRef      *string `json:"styleRef,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

// CapacityExceededResponse тело ответа 409: аванс уже списан,
// но место в слоте получить не удалось
type CapacityExceededResponse struct {
	Error           string `json:"error"`
	PaymentCaptured bool   `json:"paymentCaptured"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ConfirmAdvanceRequest) ToUseCaseRequest(userID int64) (*confirmAdvance.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	timeLabel, err := types.NewTimeStringFromString(r.TimeLabel)
	if err != nil {
		return nil, err
	}

	return &confirmAdvance.Request{
		OrderID:   r.OrderID,
		PaymentID: r.PaymentID,
		Signature: r.Signature,
		UserID:    userID,
		ServiceID: r.ServiceID,
		Date:      bookingDate,
		TimeLabel: timeLabel,
		Notes:     r.Notes,
		StyleRef:  r.StyleRef,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmAdvance.Response) *ConfirmAdvanceResponse {
	b := resp.Booking
	return &ConfirmAdvanceResponse{
		Booking: &BookingResponse{
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
			Notes:         b.Notes,
			StyleRef:      b.StyleRef,
			CreatedAt:     b.CreatedAt.Format(time.RFC3339),
		},
		AlreadyProcessed: resp.AlreadyProcessed,
	}
}
