package get_admin_bookings

import (
	"fmt"
	"net/url"
	"time"

	"github.com/looklab/LookLab-BookingService/internal/domain"
	"github.com/looklab/LookLab-BookingService/internal/service/bookings/models"
)

// ParseQuery собирает запрос к сервису из query параметров.
// Поддерживаются: startDate, endDate (YYYY-MM-DD), status, includeInactive.
func ParseQuery(query url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

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

	if raw := query.Get("status"); raw != "" {
		status := raw
		req.Status = &status
	}

	req.IncludeInactive = query.Get("includeInactive") == "true"

	return req, nil
}
