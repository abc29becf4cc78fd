package domain

// Default facility configuration
const (
	DefaultSlotCapacity        = 4
	DefaultSlotDurationMinutes = 60
	DefaultCurrency            = "INR"
)

// Business validation constants
const (
	MinSlotCapacity        = 1
	MaxSlotCapacity        = 50
	MaxNotesLength         = 500
	MaxCancelReasonLength  = 500
	MaxStyleRefLength      = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses are the statuses that count against slot capacity.
// Used when counting occupancy for the availability grid and for the
// locked admission check.
var ActiveStatuses = []BookingStatus{
	StatusConfirmed,
	StatusServiceDone,
	StatusCompleted,
}
