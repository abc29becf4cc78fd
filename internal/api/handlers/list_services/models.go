package list_services

import "github.com/looklab/LookLab-BookingService/internal/domain"

// ServiceResponse HTTP response model
type ServiceResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Price       int64  `json:"price"`
	Duration    string `json:"duration,omitempty"`
}

// ServiceListResponse список услуг каталога
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainServices конвертирует domain модели в HTTP response
func FromDomainServices(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}
	for _, svc := range services {
		resp.Services = append(resp.Services, ServiceResponse{
			ID:          svc.ID,
			Name:        svc.Name,
			Category:    svc.Category,
			Description: svc.Description,
			Price:       svc.Price,
			Duration:    svc.Duration,
		})
	}
	return resp
}
