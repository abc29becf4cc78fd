package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/looklab/LookLab-BookingService/pkg/types"
)

func newSettings(t *testing.T, open, close string, slotMinutes int) FacilitySettings {
	t.Helper()
	openTime, err := types.NewTimeStringFromString(open)
	require.NoError(t, err)
	closeTime, err := types.NewTimeStringFromString(close)
	require.NoError(t, err)
	return FacilitySettings{
		OpenTime:            openTime,
		CloseTime:           closeTime,
		SlotDurationMinutes: slotMinutes,
		SlotCapacity:        DefaultSlotCapacity,
		Currency:            DefaultCurrency,
	}
}

func TestFacilitySettings_DayGrid(t *testing.T) {
	t.Run("full day hourly grid", func(t *testing.T) {
		settings := newSettings(t, "10:00", "20:00", 60)

		grid, err := settings.DayGrid()
		require.NoError(t, err)
		require.Len(t, grid, 10)
		assert.Equal(t, "10:00", grid[0].String())
		assert.Equal(t, "19:00", grid[9].String())
	})

	t.Run("slot must end before closing", func(t *testing.T) {
		settings := newSettings(t, "10:00", "11:30", 60)

		grid, err := settings.DayGrid()
		require.NoError(t, err)
		// второй слот закончился бы в 12:00, после закрытия
		require.Len(t, grid, 1)
		assert.Equal(t, "10:00", grid[0].String())
	})

	t.Run("late closing does not wrap past midnight", func(t *testing.T) {
		// конец слота 23:00 заворачивается в 00:00 - сетка должна
		// оборваться на 22:00, а не зациклиться
		settings := newSettings(t, "10:00", "23:30", 60)

		grid, err := settings.DayGrid()
		require.NoError(t, err)
		require.Len(t, grid, 13)
		assert.Equal(t, "10:00", grid[0].String())
		assert.Equal(t, "22:00", grid[12].String())
	})

	t.Run("half hour slots", func(t *testing.T) {
		settings := newSettings(t, "09:00", "10:30", 30)

		grid, err := settings.DayGrid()
		require.NoError(t, err)
		require.Len(t, grid, 3)
		assert.Equal(t, "09:00", grid[0].String())
		assert.Equal(t, "10:00", grid[2].String())
	})
}

func TestFacilitySettings_ContainsLabel(t *testing.T) {
	settings := newSettings(t, "10:00", "20:00", 60)

	inGrid, err := settings.ContainsLabel(types.TimeString("14:00"))
	require.NoError(t, err)
	assert.True(t, inGrid)

	offGrid, err := settings.ContainsLabel(types.TimeString("14:30"))
	require.NoError(t, err)
	assert.False(t, offGrid)

	afterClose, err := settings.ContainsLabel(types.TimeString("20:00"))
	require.NoError(t, err)
	assert.False(t, afterClose)
}
