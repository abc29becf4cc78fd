package domain

import (
	"time"

	"github.com/looklab/LookLab-BookingService/pkg/types"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	// StatusScheduled is the pre-payment state. The engine never inserts
	// bookings in this state (a booking row is born Confirmed, together with
	// its slot reservation), but it remains a legal cancel-from state for
	// rows imported from the previous system.
	StatusScheduled   BookingStatus = "Scheduled"
	StatusConfirmed   BookingStatus = "Confirmed"
	StatusServiceDone BookingStatus = "Service Done"
	StatusCompleted   BookingStatus = "Completed"
	StatusCancelled   BookingStatus = "Cancelled"
)

// statusRank defines the forward order of the lifecycle. Cancelled is the
// terminal branch and has no rank.
var statusRank = map[BookingStatus]int{
	StatusScheduled:   0,
	StatusConfirmed:   1,
	StatusServiceDone: 2,
	StatusCompleted:   3,
}

// Booking represents a reservation of one capacity unit of a time slot,
// paid in two phases: an advance at confirmation and a balance after the
// service is rendered.
type Booking struct {
	ID          int64
	UserID      int64
	ServiceID   int64
	BookingDate time.Time
	TimeLabel   types.TimeString
	Status      BookingStatus

	// Amounts are integers in minor currency units (paise).
	TotalAmount   int64
	AdvanceAmount int64
	BalanceAmount int64

	// Payment order identifiers. The advance pair is set at confirmation
	// and never changes; the balance pair is filled by the second phase.
	AdvanceOrderID   string
	AdvancePaymentID string
	BalanceOrderID   *string
	BalancePaymentID *string

	// Denormalized data for history
	ServiceName string

	Notes    *string
	StyleRef *string // optional reference to an AI stylist look

	CancellationReason *string
	CancelledAt        *time.Time
	ServiceDoneAt      *time.Time
	CompletedAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking counts against slot capacity
func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed ||
		b.Status == StatusServiceDone ||
		b.Status == StatusCompleted
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusScheduled || b.Status == StatusConfirmed
}

// HoldsSlot returns true if cancelling the booking frees a capacity unit
func (b *Booking) HoldsSlot() bool {
	return b.IsActive()
}

// BalanceDue returns true if a balance payment is still owed
func (b *Booking) BalanceDue() bool {
	return b.Status == StatusServiceDone && b.BalanceAmount > 0
}

// CanTransitionTo reports whether moving to next is a legal forward step.
// Cancellation is legal only from Scheduled and Confirmed; every other
// transition must advance the rank by exactly one.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	if next == StatusCancelled {
		return b.CanBeCancelled()
	}
	cur, ok := statusRank[b.Status]
	if !ok {
		return false
	}
	nxt, ok := statusRank[next]
	if !ok {
		return false
	}
	return nxt == cur+1
}

// ParseBookingStatus validates a raw status string
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusScheduled, StatusConfirmed, StatusServiceDone, StatusCompleted, StatusCancelled:
		return BookingStatus(s), true
	}
	return "", false
}
