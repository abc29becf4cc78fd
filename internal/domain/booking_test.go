package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBooking_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{name: "confirmed to service done", from: StatusConfirmed, to: StatusServiceDone, want: true},
		{name: "service done to completed", from: StatusServiceDone, to: StatusCompleted, want: true},
		{name: "scheduled to confirmed", from: StatusScheduled, to: StatusConfirmed, want: true},

		{name: "confirmed skips to completed", from: StatusConfirmed, to: StatusCompleted, want: false},
		{name: "scheduled skips to service done", from: StatusScheduled, to: StatusServiceDone, want: false},
		{name: "completed goes nowhere", from: StatusCompleted, to: StatusConfirmed, want: false},
		{name: "backward step", from: StatusServiceDone, to: StatusConfirmed, want: false},

		{name: "cancel from scheduled", from: StatusScheduled, to: StatusCancelled, want: true},
		{name: "cancel from confirmed", from: StatusConfirmed, to: StatusCancelled, want: true},
		{name: "cancel after service done", from: StatusServiceDone, to: StatusCancelled, want: false},
		{name: "cancel after completed", from: StatusCompleted, to: StatusCancelled, want: false},
		{name: "cancel twice", from: StatusCancelled, to: StatusCancelled, want: false},

		{name: "cancelled is terminal", from: StatusCancelled, to: StatusConfirmed, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.from}
			assert.Equal(t, tt.want, b.CanTransitionTo(tt.to))
		})
	}
}

func TestBooking_IsActive(t *testing.T) {
	assert.False(t, (&Booking{Status: StatusScheduled}).IsActive())
	assert.True(t, (&Booking{Status: StatusConfirmed}).IsActive())
	assert.True(t, (&Booking{Status: StatusServiceDone}).IsActive())
	assert.True(t, (&Booking{Status: StatusCompleted}).IsActive())
	assert.False(t, (&Booking{Status: StatusCancelled}).IsActive())
}

func TestBooking_BalanceDue(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusServiceDone, BalanceAmount: 200}).BalanceDue())
	assert.False(t, (&Booking{Status: StatusServiceDone, BalanceAmount: 0}).BalanceDue())
	assert.False(t, (&Booking{Status: StatusConfirmed, BalanceAmount: 200}).BalanceDue())
	assert.False(t, (&Booking{Status: StatusCompleted, BalanceAmount: 200}).BalanceDue())
}

func TestParseBookingStatus(t *testing.T) {
	for _, valid := range []string{"Scheduled", "Confirmed", "Service Done", "Completed", "Cancelled"} {
		status, ok := ParseBookingStatus(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, BookingStatus(valid), status)
	}

	for _, invalid := range []string{"", "confirmed", "Done", "PENDING"} {
		_, ok := ParseBookingStatus(invalid)
		assert.False(t, ok, invalid)
	}
}
