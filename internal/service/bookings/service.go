package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/looklab/LookLab-BookingService/internal/domain"
	bookingRepo "github.com/looklab/LookLab-BookingService/internal/infra/storage/booking"
	"github.com/looklab/LookLab-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с журналом бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть только своё бронирование, персонал - любое
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, isStaff bool) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !isStaff && booking.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, ok := domain.ParseBookingStatus(*req.Status)
		if !ok {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// ListBookings получает журнал бронирований с гибкой фильтрацией
// Доступно только персоналу салона
//
// Примеры использования:
// - Все активные бронирования: ListBookings(ctx, &ListBookingsRequest{})
// - Бронирования на дату: StartDate и EndDate указывают на одну дату
// - Только подтверждённые: указать Status = "Confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) ListBookings(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := "ListBookings: fetching ledger"
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListBookings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBookings: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// MarkServiceDone переводит бронирование из Confirmed в Service Done
// Доступно только персоналу салона
func (s *Service) MarkServiceDone(ctx context.Context, bookingID int64) (*models.BookingResponse, error) {
	s.logger.Info("MarkServiceDone: marking booking id=%d", bookingID)

	if err := s.bookingRepo.MarkServiceDone(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrNotInExpectedStatus) {
			// Различаем "не найдено" и "не тот статус" повторным чтением
			booking, getErr := s.bookingRepo.GetByID(ctx, bookingID)
			if getErr != nil {
				s.logger.Warn("MarkServiceDone: booking id=%d not found", bookingID)
				return nil, ErrBookingNotFound
			}
			s.logger.Warn("MarkServiceDone: booking id=%d is in status=%s", bookingID, booking.Status)
			return nil, fmt.Errorf("%w: booking is in status %q", ErrInvalidTransition, booking.Status)
		}
		s.logger.Error("MarkServiceDone: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: MarkServiceDone - repository error: %v", ErrInternal, err)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		s.logger.Error("MarkServiceDone: reload error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: MarkServiceDone - reload error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkServiceDone: booking id=%d marked as service done", bookingID)
	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет бронирование
// Пользователь может отменить только своё бронирование, персонал - любое.
// Отмена подтверждённого бронирования освобождает одно место в слоте;
// аванс при отмене не возвращается автоматически.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !req.IsStaff && booking.UserID != req.UserID {
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrNotInExpectedStatus) {
			// Статус успел измениться между чтением и отменой
			s.logger.Warn("Cancel: booking id=%d changed status during cancellation", bookingID)
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: booking id=%d cancelled", bookingID)
	return nil
}

// Stats возвращает сводные показатели журнала для административной панели
func (s *Service) Stats(ctx context.Context, req *models.ListBookingsRequest) (*models.StatsResponse, error) {
	s.logger.Info("Stats: calculating ledger stats")

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("Stats: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	stats, err := s.bookingRepo.Stats(ctx, filter)
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStats(stats), nil
}
