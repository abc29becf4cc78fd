package get_available_slots

import (
	"context"
	"fmt"

	"github.com/looklab/LookLab-BookingService/internal/domain"
)

// UseCase use case получения сетки доступности слотов на день.
// Читающий путь: допускает короткое окно неактуальности - авторитетная
// проверка ёмкости выполняется при подтверждении аванса.
type UseCase struct {
	bookingRepo  BookingRepository
	settings     domain.FacilitySettings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, settings domain.FacilitySettings, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения сетки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	uc.logger.Info("GetAvailableSlots: date=%s", req.Date.Format(domain.DateFormat))

	now := uc.timeProvider.Now()

	// Даты в прошлом - пустая сетка
	if isDateInPast(req.Date, now) {
		return &Response{Date: req.Date, Slots: []Slot{}}, nil
	}

	grid, err := uc.settings.DayGrid()
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build day grid: %v", err)
		return nil, fmt.Errorf("%w: failed to build day grid: %v", ErrInternal, err)
	}

	counts, err := uc.bookingRepo.CountActiveByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to count active bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to count active bookings: %v", ErrInternal, err)
	}

	slots := make([]Slot, 0, len(grid))
	for _, label := range grid {
		// Для сегодняшней даты прошедшие слоты не предлагаем
		if isSameDay(req.Date, now) && !label.IsAfter(domainNow(now)) {
			continue
		}

		remaining := uc.settings.SlotCapacity - counts[label]
		if remaining < 0 {
			remaining = 0
		}

		slots = append(slots, Slot{
			TimeLabel: label,
			Remaining: remaining,
			Capacity:  uc.settings.SlotCapacity,
			IsFull:    remaining <= 0,
		})
	}

	uc.logger.Info("GetAvailableSlots: date=%s, slots=%d", req.Date.Format(domain.DateFormat), len(slots))
	return &Response{Date: req.Date, Slots: slots}, nil
}
