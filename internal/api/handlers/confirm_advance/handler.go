package confirm_advance

import (
	"errors"
	"net/http"

	"github.com/looklab/LookLab-BookingService/internal/api/handlers"
	"github.com/looklab/LookLab-BookingService/internal/api/middleware"
	confirmAdvance "github.com/looklab/LookLab-BookingService/internal/usecase/confirm_advance"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBadSignature       = "подпись платежа не прошла проверку"
	msgServiceNotFound    = "услуга не найдена"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgCapacityExceeded   = "в выбранном слоте не осталось мест, платеж будет возвращен"
)

type Handler struct {
	useCase ConfirmAdvanceUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmAdvanceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/advance/confirm
//
// Идемпотентен по razorpayOrderId: повторная доставка callback
// возвращает 200 с исходным бронированием.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /payments/advance/confirm - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ConfirmAdvanceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/advance/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /payments/advance/confirm - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, confirmAdvance.ErrInvalidInput):
			h.logger.Warn("POST /payments/advance/confirm - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, confirmAdvance.ErrPaymentVerification):
			h.logger.Warn("POST /payments/advance/confirm - Signature verification failed: user_id=%d, order_id=%s",
				userID, req.OrderID)
			handlers.RespondBadRequest(w, msgBadSignature)

		case errors.Is(err, confirmAdvance.ErrCapacityExceeded):
			// Аванс уже списан шлюзом: клиенту сообщается, что платеж
			// будет возвращен, место при этом не выделено
			h.logger.Warn("POST /payments/advance/confirm - Capacity exceeded: user_id=%d, order_id=%s, date=%s, time=%s",
				userID, req.OrderID, req.BookingDate, req.TimeLabel)
			handlers.RespondJSON(w, http.StatusConflict, CapacityExceededResponse{
				Error:           msgCapacityExceeded,
				PaymentCaptured: true,
			})

		case errors.Is(err, confirmAdvance.ErrServiceNotFound):
			h.logger.Warn("POST /payments/advance/confirm - Service not found: user_id=%d, service_id=%d",
				userID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, confirmAdvance.ErrInvalidTimeSlot):
			h.logger.Warn("POST /payments/advance/confirm - Invalid time slot: user_id=%d, time=%s", userID, req.TimeLabel)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		default:
			h.logger.Error("POST /payments/advance/confirm - Failed to confirm advance: user_id=%d, order_id=%s, error=%v",
				userID, req.OrderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusCreated
	if result.AlreadyProcessed {
		status = http.StatusOK
		h.logger.Info("POST /payments/advance/confirm - Duplicate callback collapsed: order_id=%s, booking_id=%d",
			req.OrderID, result.Booking.ID)
	} else {
		h.logger.Info("POST /payments/advance/confirm - Booking confirmed: booking_id=%d, user_id=%d, order_id=%s",
			result.Booking.ID, userID, req.OrderID)
	}
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
