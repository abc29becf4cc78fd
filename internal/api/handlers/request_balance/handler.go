package request_balance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/looklab/LookLab-BookingService/internal/api/handlers"
	"github.com/looklab/LookLab-BookingService/internal/api/middleware"
	requestBalance "github.com/looklab/LookLab-BookingService/internal/usecase/request_balance"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgInvalidTransition  = "доплата возможна только после оказания услуги"
	msgNothingDue         = "доплата по бронированию не требуется"
	msgGatewayUnavailable = "платежный шлюз временно недоступен"
)

// BalanceOrderResponse HTTP response model: заказ на доплату
type BalanceOrderResponse struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type Handler struct {
	useCase RequestBalanceUseCase
	logger  Logger
}

func NewHandler(useCase RequestBalanceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/balance/order
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/balance/order - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/balance/order - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &requestBalance.Request{
		BookingID: bookingID,
		UserID:    userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, requestBalance.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/balance/order - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		case errors.Is(err, requestBalance.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/balance/order - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, requestBalance.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/balance/order - Access denied: booking_id=%d, user_id=%d",
				bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, requestBalance.ErrInvalidTransition):
			h.logger.Warn("POST /bookings/{id}/balance/order - Invalid transition: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, requestBalance.ErrNothingDue):
			h.logger.Warn("POST /bookings/{id}/balance/order - Nothing due: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgNothingDue)

		case errors.Is(err, requestBalance.ErrGateway):
			h.logger.Error("POST /bookings/{id}/balance/order - Gateway error: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgGatewayUnavailable)

		default:
			h.logger.Error("POST /bookings/{id}/balance/order - Failed to create balance order: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/balance/order - Balance order created: booking_id=%d, order_id=%s, amount=%d",
		bookingID, result.OrderID, result.Amount)
	handlers.RespondJSON(w, http.StatusCreated, BalanceOrderResponse{
		OrderID:  result.OrderID,
		Amount:   result.Amount,
		Currency: result.Currency,
	})
}
