package get_available_slots

import (
	"time"

	"github.com/looklab/LookLab-BookingService/pkg/types"
)

// Request модель запроса сетки доступности
type Request struct {
	Date time.Time // Дата (без времени)
}

// Slot один слот сетки доступности
type Slot struct {
	TimeLabel types.TimeString
	Remaining int
	Capacity  int
	IsFull    bool
}

// Response сетка доступности на день
type Response struct {
	Date  time.Time
	Slots []Slot
}
