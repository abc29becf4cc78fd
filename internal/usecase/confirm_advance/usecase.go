package confirm_advance

import (
	"context"
	"errors"
	"fmt"

	"github.com/looklab/LookLab-BookingService/internal/domain"
	bookingRepo "github.com/looklab/LookLab-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/looklab/LookLab-BookingService/internal/infra/storage/catalog"
)

// UseCase use case подтверждения авансового платежа - ядро оркестратора.
// Порядок шагов фиксирован: проверка подписи → идемпотентность → атомарная
// резервация слота вместе со вставкой строки бронирования.
type UseCase struct {
	bookingRepo BookingRepository
	catalogRepo CatalogRepository
	gateway     PaymentGateway
	txManager   TransactionManager
	settings    domain.FacilitySettings
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	gateway PaymentGateway,
	txManager TransactionManager,
	settings domain.FacilitySettings,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		catalogRepo: catalogRepo,
		gateway:     gateway,
		txManager:   txManager,
		settings:    settings,
		logger:      logger,
	}
}

// Execute выполняет use case подтверждения аванса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmAdvance: order=%s, payment=%s, user=%d, service=%d, date=%s, time=%s",
		req.OrderID, req.PaymentID, req.UserID, req.ServiceID,
		req.Date.Format(domain.DateFormat), req.TimeLabel)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmAdvance: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверка подписи платежа. До любой записи: при несовпадении -
	// отказ без побочных эффектов.
	if !uc.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		uc.logger.Warn("ConfirmAdvance: signature mismatch for order=%s", req.OrderID)
		return nil, ErrPaymentVerification
	}

	// 3. Идемпотентность: бронирование для этого заказа уже существует -
	// возвращаем его без изменений (повторная доставка webhook не ошибка)
	existing, err := uc.bookingRepo.GetByAdvanceOrderID(ctx, req.OrderID)
	if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
		uc.logger.Error("ConfirmAdvance: idempotency check failed for order=%s: %v", req.OrderID, err)
		return nil, fmt.Errorf("%w: idempotency check failed: %v", ErrInternal, err)
	}
	if existing != nil {
		uc.logger.Info("ConfirmAdvance: order=%s already processed, booking id=%d", req.OrderID, existing.ID)
		return &Response{Booking: existing, AlreadyProcessed: true}, nil
	}

	// 4. Метка слота и прайсинг
	valid, err := uc.settings.ContainsLabel(req.TimeLabel)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to check slot label: %v", ErrInternal, err)
	}
	if !valid {
		uc.logger.Warn("ConfirmAdvance: time label %s is not in the day grid", req.TimeLabel)
		return nil, ErrInvalidTimeSlot
	}

	service, err := uc.catalogRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("ConfirmAdvance: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("ConfirmAdvance: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	advance, balance := domain.SplitAmount(service.Price)

	var result *domain.Booking

	// 5. Резервация и вставка - одна сериализуемая транзакция.
	// Резервация не может закоммититься без строки бронирования, и наоборот.
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Блокирующий пересчет активных бронирований слота
		count, err := uc.bookingRepo.CountActiveForSlot(txCtx, req.Date, req.TimeLabel)
		if err != nil {
			uc.logger.Error("ConfirmAdvance: failed to count slot occupancy: %v", err)
			return fmt.Errorf("%w: failed to count slot occupancy: %v", ErrInternal, err)
		}

		// При C=4 допустимы count = 0..3; при count >= 4 резервация невозможна
		if count >= uc.settings.SlotCapacity {
			uc.logger.Warn("ConfirmAdvance: slot %s %s full at reservation time (%d/%d), order=%s",
				req.Date.Format(domain.DateFormat), req.TimeLabel, count, uc.settings.SlotCapacity, req.OrderID)
			return ErrCapacityExceeded
		}

		// 5.2. Вставка подтвержденного бронирования с данными платежа
		booking := &domain.Booking{
			UserID:           req.UserID,
			ServiceID:        req.ServiceID,
			ServiceName:      service.Name,
			BookingDate:      req.Date,
			TimeLabel:        req.TimeLabel,
			Status:           domain.StatusConfirmed,
			TotalAmount:      service.Price,
			AdvanceAmount:    advance,
			BalanceAmount:    balance,
			AdvanceOrderID:   req.OrderID,
			AdvancePaymentID: req.PaymentID,
			Notes:            req.Notes,
			StyleRef:         req.StyleRef,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		// Конкурентный дубликат webhook: уникальный индекс по advance_order_id
		// схлопнул гонку - возвращаем строку победителя
		if errors.Is(err, bookingRepo.ErrDuplicateOrder) {
			winner, getErr := uc.bookingRepo.GetByAdvanceOrderID(ctx, req.OrderID)
			if getErr != nil {
				uc.logger.Error("ConfirmAdvance: duplicate order=%s but fetch failed: %v", req.OrderID, getErr)
				return nil, fmt.Errorf("%w: duplicate fetch failed: %v", ErrInternal, getErr)
			}
			uc.logger.Info("ConfirmAdvance: concurrent duplicate for order=%s collapsed to booking id=%d",
				req.OrderID, winner.ID)
			return &Response{Booking: winner, AlreadyProcessed: true}, nil
		}
		if errors.Is(err, ErrCapacityExceeded) {
			// Переполнение могло быть вызвано нашей же строкой: повторная
			// доставка webhook, успевшая раньше коммита победителя, видит
			// заполненный слот. Перепроверяем заказ перед отказом.
			winner, getErr := uc.bookingRepo.GetByAdvanceOrderID(ctx, req.OrderID)
			if getErr == nil {
				uc.logger.Info("ConfirmAdvance: order=%s already holds booking id=%d in a full slot",
					req.OrderID, winner.ID)
				return &Response{Booking: winner, AlreadyProcessed: true}, nil
			}
			if !errors.Is(getErr, bookingRepo.ErrBookingNotFound) {
				uc.logger.Error("ConfirmAdvance: full-slot recheck failed for order=%s: %v", req.OrderID, getErr)
				return nil, fmt.Errorf("%w: full-slot recheck failed: %v", ErrInternal, getErr)
			}
			return nil, err
		}
		uc.logger.Error("ConfirmAdvance: transaction failed for order=%s: %v", req.OrderID, err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.logger.Info("ConfirmAdvance: booking id=%d confirmed, order=%s, advance=%d, balance=%d",
		result.ID, req.OrderID, advance, balance)

	return &Response{Booking: result}, nil
}
