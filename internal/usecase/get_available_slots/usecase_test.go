package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/looklab/LookLab-BookingService/internal/domain"
	"github.com/looklab/LookLab-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	counts map[types.TimeString]int
	err    error
}

func (f *fakeBookingRepo) CountActiveByDate(_ context.Context, _ time.Time) (map[types.TimeString]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.counts, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testSettings() domain.FacilitySettings {
	return domain.FacilitySettings{
		OpenTime:            types.TimeString("10:00"),
		CloseTime:           types.TimeString("13:00"),
		SlotDurationMinutes: 60,
		SlotCapacity:        4,
		Currency:            "INR",
	}
}

func newTestUseCase(repo *fakeBookingRepo, now time.Time) *UseCase {
	uc := NewUseCase(repo, testSettings(), nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestGetAvailableSlots_FutureDate(t *testing.T) {
	repo := &fakeBookingRepo{counts: map[types.TimeString]int{
		"10:00": 4,
		"11:00": 2,
	}}
	now := time.Date(2026, 10, 10, 9, 0, 0, 0, time.UTC)
	uc := newTestUseCase(repo, now)

	resp, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)

	assert.Equal(t, types.TimeString("10:00"), resp.Slots[0].TimeLabel)
	assert.Equal(t, 0, resp.Slots[0].Remaining)
	assert.True(t, resp.Slots[0].IsFull)

	assert.Equal(t, 2, resp.Slots[1].Remaining)
	assert.False(t, resp.Slots[1].IsFull)

	assert.Equal(t, 4, resp.Slots[2].Remaining)
	assert.Equal(t, 4, resp.Slots[2].Capacity)
}

func TestGetAvailableSlots_PastDateIsEmpty(t *testing.T) {
	repo := &fakeBookingRepo{counts: map[types.TimeString]int{}}
	now := time.Date(2026, 10, 10, 9, 0, 0, 0, time.UTC)
	uc := newTestUseCase(repo, now)

	resp, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2026, 10, 9, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestGetAvailableSlots_TodayHidesPastLabels(t *testing.T) {
	repo := &fakeBookingRepo{counts: map[types.TimeString]int{}}
	// 11:30: слоты 10:00 и 11:00 уже начались
	now := time.Date(2026, 10, 10, 11, 30, 0, 0, time.UTC)
	uc := newTestUseCase(repo, now)

	resp, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, types.TimeString("12:00"), resp.Slots[0].TimeLabel)
}

func TestGetAvailableSlots_OvercountClampsToZero(t *testing.T) {
	repo := &fakeBookingRepo{counts: map[types.TimeString]int{
		"10:00": 7, // больше ёмкости: исторические данные со старой конфигурацией
	}}
	now := time.Date(2026, 10, 10, 9, 0, 0, 0, time.UTC)
	uc := newTestUseCase(repo, now)

	resp, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Slots[0].Remaining)
	assert.True(t, resp.Slots[0].IsFull)
}

func TestGetAvailableSlots_ZeroDate(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, time.Now())

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
