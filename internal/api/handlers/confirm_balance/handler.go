package confirm_balance

import (
	"errors"
	"net/http"

	"github.com/looklab/LookLab-BookingService/internal/api/handlers"
	confirmBalance "github.com/looklab/LookLab-BookingService/internal/usecase/confirm_balance"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBadSignature       = "подпись платежа не прошла проверку"
	msgOrderNotFound      = "заказ на доплату не найден"
	msgInvalidTransition  = "бронирование не ожидает доплату"
)

type Handler struct {
	useCase ConfirmBalanceUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmBalanceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/balance/confirm
//
// Идемпотентен по razorpayOrderId: повторная доставка callback
// возвращает 200 с уже завершенным бронированием.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ConfirmBalanceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/balance/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmBalance.Request{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmBalance.ErrInvalidInput):
			h.logger.Warn("POST /payments/balance/confirm - Invalid input: error=%v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, confirmBalance.ErrPaymentVerification):
			h.logger.Warn("POST /payments/balance/confirm - Signature verification failed: order_id=%s", req.OrderID)
			handlers.RespondBadRequest(w, msgBadSignature)

		case errors.Is(err, confirmBalance.ErrOrderNotFound):
			h.logger.Warn("POST /payments/balance/confirm - Order not found: order_id=%s", req.OrderID)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, confirmBalance.ErrInvalidTransition):
			h.logger.Warn("POST /payments/balance/confirm - Invalid transition: order_id=%s", req.OrderID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		default:
			h.logger.Error("POST /payments/balance/confirm - Failed to confirm balance: order_id=%s, error=%v",
				req.OrderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.AlreadyProcessed {
		h.logger.Info("POST /payments/balance/confirm - Duplicate callback collapsed: order_id=%s, booking_id=%d",
			req.OrderID, result.Booking.ID)
	} else {
		h.logger.Info("POST /payments/balance/confirm - Booking completed: booking_id=%d, order_id=%s",
			result.Booking.ID, req.OrderID)
	}
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
