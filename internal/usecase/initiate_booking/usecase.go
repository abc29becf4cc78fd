package initiate_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/looklab/LookLab-BookingService/internal/domain"
	catalogRepo "github.com/looklab/LookLab-BookingService/internal/infra/storage/catalog"
)

// UseCase use case инициации бронирования: рекомендательная проверка слота,
// расчет сумм и создание авансового заказа в платежном шлюзе
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	gateway      PaymentGateway
	settings     domain.FacilitySettings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	gateway PaymentGateway,
	settings domain.FacilitySettings,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		gateway:      gateway,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case инициации бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("InitiateBooking: user=%d, service=%d, date=%s, time=%s",
		req.UserID, req.ServiceID, req.Date.Format(domain.DateFormat), req.TimeLabel)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("InitiateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Дата и метка слота
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("InitiateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	valid, err := uc.settings.ContainsLabel(req.TimeLabel)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to check slot label: %v", ErrInternal, err)
	}
	if !valid {
		uc.logger.Warn("InitiateBooking: time label %s is not in the day grid", req.TimeLabel)
		return nil, ErrInvalidTimeSlot
	}

	// 3. Услуга и цена
	service, err := uc.catalogRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("InitiateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("InitiateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Bookable() {
		uc.logger.Warn("InitiateBooking: service id=%d is not bookable", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 4. Рекомендательная проверка ёмкости слота. Без блокировок: слот может
	// заполниться между этим шагом и подтверждением - авторитетная проверка
	// выполняется атомарно в confirm-advance.
	count, err := uc.bookingRepo.CountActiveForSlot(ctx, req.Date, req.TimeLabel)
	if err != nil {
		uc.logger.Error("InitiateBooking: failed to count slot occupancy: %v", err)
		return nil, fmt.Errorf("%w: failed to count slot occupancy: %v", ErrInternal, err)
	}
	if count >= uc.settings.SlotCapacity {
		uc.logger.Warn("InitiateBooking: slot %s %s is full (%d/%d)",
			req.Date.Format(domain.DateFormat), req.TimeLabel, count, uc.settings.SlotCapacity)
		return nil, ErrSlotFull
	}

	// 5. Авансовый заказ в шлюзе
	advance, balance := domain.SplitAmount(service.Price)

	order, err := uc.gateway.CreateOrder(ctx, advance, uc.settings.Currency)
	if err != nil {
		uc.logger.Error("InitiateBooking: gateway failed to create order: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	uc.logger.Info("InitiateBooking: order created, order_id=%s, advance=%d, balance=%d",
		order.ID, advance, balance)

	return &Response{
		OrderID:       order.ID,
		Amount:        advance,
		Currency:      order.Currency,
		TotalAmount:   service.Price,
		AdvanceAmount: advance,
		BalanceAmount: balance,
	}, nil
}
