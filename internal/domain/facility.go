package domain

import "github.com/looklab/LookLab-BookingService/pkg/types"

// FacilitySettings describes the single facility's working day: the slot
// grid and the per-slot capacity C. Built once from configuration.
type FacilitySettings struct {
	OpenTime            types.TimeString
	CloseTime           types.TimeString
	SlotDurationMinutes int
	SlotCapacity        int
	Currency            string
}

// DayGrid generates the fixed time labels of a working day, from opening
// time up to (but never past) closing time, stepping by the slot duration.
func (f FacilitySettings) DayGrid() ([]types.TimeString, error) {
	grid := make([]types.TimeString, 0)
	current := f.OpenTime

	for current.IsBefore(f.CloseTime) {
		slotEnd, err := current.AddMinutes(f.SlotDurationMinutes)
		if err != nil {
			return nil, err
		}
		// AddMinutes заворачивается через полночь: конец слота "раньше"
		// его начала означает выход за пределы суток
		if !slotEnd.IsAfter(current) {
			break
		}
		if slotEnd.IsAfter(f.CloseTime) {
			break
		}

		grid = append(grid, current)
		current = slotEnd
	}

	return grid, nil
}

// ContainsLabel reports whether timeLabel is one of the day's fixed slots
func (f FacilitySettings) ContainsLabel(timeLabel types.TimeString) (bool, error) {
	grid, err := f.DayGrid()
	if err != nil {
		return false, err
	}
	for _, label := range grid {
		if label == timeLabel {
			return true, nil
		}
	}
	return false, nil
}
