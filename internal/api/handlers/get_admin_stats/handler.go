package get_admin_stats

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/looklab/LookLab-BookingService/internal/api/handlers"
	"github.com/looklab/LookLab-BookingService/internal/domain"
	"github.com/looklab/LookLab-BookingService/internal/service/bookings"
	"github.com/looklab/LookLab-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidQuery = "некорректные параметры фильтра"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/stats
// Query params: startDate, endDate (YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceReq, err := parseQuery(r)
	if err != nil {
		h.logger.Warn("GET /admin/stats - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.Stats(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /admin/stats - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		h.logger.Error("GET /admin/stats - Failed to get stats: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/stats - Stats retrieved: total=%d, collected=%d, pending=%d",
		result.TotalBookings, result.CollectedRevenue, result.PendingBalance)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseQuery(r *http.Request) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}
	query := r.URL.Query()

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("parse startDate: %w", err)
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("parse endDate: %w", err)
		}
		req.EndDate = &endDate
	}

	return req, nil
}
