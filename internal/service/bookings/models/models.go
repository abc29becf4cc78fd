package models

import (
	"errors"
	"time"

	"github.com/looklab/LookLab-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	IsStaff            bool   `json:"-"`
	CancellationReason string `json:"cancellationReason"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// ListBookingsRequest запрос на выборку журнала бронирований (админ)
type ListBookingsRequest struct {
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.LedgerFilter, error) {
	filter := domain.LedgerFilter{
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, ok := domain.ParseBookingStatus(*r.Status)
		if !ok {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	ServiceID   int64  `json:"serviceId"`
	BookingDate string `json:"bookingDate"` // "2025-10-15"
	TimeLabel   string `json:"timeLabel"`   // "14:00"
	Status      string `json:"status"`

	TotalAmount   int64 `json:"totalAmount"`
	AdvanceAmount int64 `json:"advanceAmount"`
	BalanceAmount int64 `json:"balanceAmount"`
	BalancePaid   bool  `json:"balancePaid"`

	// Денормализованные данные
	ServiceName string  `json:"serviceName"`
	Notes       *string `json:"notes,omitempty"`
	StyleRef    *string `json:"styleRef,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`  // ISO 8601
	ServiceDoneAt      *string `json:"serviceDoneAt,omitempty"` // ISO 8601
	CompletedAt        *string `json:"completedAt,omitempty"`  // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// StatsResponse сводные показатели журнала
type StatsResponse struct {
	TotalBookings    int64 `json:"totalBookings"`
	CollectedRevenue int64 `json:"collectedRevenue"`
	PendingBalance   int64 `json:"pendingBalance"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		UserID:             b.UserID,
		ServiceID:          b.ServiceID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		TimeLabel:          b.TimeLabel.String(),
		Status:             string(b.Status),
		TotalAmount:        b.TotalAmount,
		AdvanceAmount:      b.AdvanceAmount,
		BalanceAmount:      b.BalanceAmount,
		BalancePaid:        b.Status == domain.StatusCompleted,
		ServiceName:        b.ServiceName,
		Notes:              b.Notes,
		StyleRef:           b.StyleRef,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	resp.CancelledAt = formatTimePtr(b.CancelledAt)
	resp.ServiceDoneAt = formatTimePtr(b.ServiceDoneAt)
	resp.CompletedAt = formatTimePtr(b.CompletedAt)

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// FromDomainStats конвертирует сводку в DTO
func FromDomainStats(s *domain.BookingStats) *StatsResponse {
	if s == nil {
		return &StatsResponse{}
	}
	return &StatsResponse{
		TotalBookings:    s.TotalBookings,
		CollectedRevenue: s.CollectedRevenue,
		PendingBalance:   s.PendingBalance,
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}
