package domain

// Service represents a salon treatment from the catalog.
// The booking engine only ever reads services; catalog management owns them.
type Service struct {
	ID          int64
	Name        string
	Category    string
	Description string
	Price       int64 // minor currency units (paise)
	Duration    string
}

// Bookable returns true if the service can be booked at all
func (s *Service) Bookable() bool {
	return s.Price > 0
}
