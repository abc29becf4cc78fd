package confirm_balance

import "github.com/looklab/LookLab-BookingService/internal/domain"

// Request параметры подтверждения доплаты
type Request struct {
	OrderID   string
	PaymentID string
	Signature string
}

// Response результат подтверждения доплаты
type Response struct {
	Booking          *domain.Booking
	AlreadyProcessed bool
}
