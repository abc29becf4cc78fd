package domain

import "github.com/looklab/LookLab-BookingService/pkg/types"

// Slot represents one (date, time label) bucket of the day grid with its
// remaining capacity
type Slot struct {
	TimeLabel types.TimeString
	Remaining int
	Capacity  int
}

// IsFull returns true if the slot has no capacity left
func (s *Slot) IsFull() bool {
	return s.Remaining <= 0
}

// IsPartiallyBooked returns true if some but not all capacity is taken
func (s *Slot) IsPartiallyBooked() bool {
	return s.Remaining > 0 && s.Remaining < s.Capacity
}
