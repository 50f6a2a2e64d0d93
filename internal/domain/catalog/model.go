package catalog

import "time"

// Service — услуга салона, доступная к записи.
type Service struct {
	ID          int64
	Name        string
	Price       float64
	DurationMin int
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (s Service) Duration() time.Duration {
	return time.Duration(s.DurationMin) * time.Minute
}
