package initiate_booking

import (
	"errors"
	"net/http"

	"github.com/looklab/LookLab-BookingService/internal/api/handlers"
	"github.com/looklab/LookLab-BookingService/internal/api/middleware"
	initiateBooking "github.com/looklab/LookLab-BookingService/internal/usecase/initiate_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgServiceNotFound    = "услуга не найдена"
	msgInvalidDate        = "некорректная дата бронирования"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgSlotFull           = "в выбранном слоте не осталось мест"
	msgGatewayUnavailable = "платежный шлюз временно недоступен"
)

type Handler struct {
	useCase InitiateBookingUseCase
	logger  Logger
}

func NewHandler(useCase InitiateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/initiate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/initiate - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req InitiateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/initiate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings/initiate - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, initiateBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/initiate - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, initiateBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings/initiate - Service not found: user_id=%d, service_id=%d", userID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, initiateBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings/initiate - Invalid booking date: user_id=%d, date=%s", userID, req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, initiateBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings/initiate - Invalid time slot: user_id=%d, time=%s", userID, req.TimeLabel)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, initiateBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings/initiate - Slot full: user_id=%d, date=%s, time=%s",
				userID, req.BookingDate, req.TimeLabel)
			handlers.RespondError(w, http.StatusConflict, msgSlotFull)

		case errors.Is(err, initiateBooking.ErrGateway):
			h.logger.Error("POST /bookings/initiate - Gateway error: user_id=%d, error=%v", userID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgGatewayUnavailable)

		default:
			h.logger.Error("POST /bookings/initiate - Failed to initiate booking: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/initiate - Advance order created: user_id=%d, order_id=%s, amount=%d",
		userID, result.OrderID, result.Amount)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
