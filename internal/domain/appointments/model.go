package appointments

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal — из completed и cancelled переходов нет.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition описывает рёбра машины статусов:
// pending → confirmed | cancelled, confirmed → completed | cancelled.
func (s Status) CanTransition(to Status) bool {
	switch s {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCompleted || to == StatusCancelled
	}
	return false
}

type Appointment struct {
	ID        int64
	UserID    int64
	MasterID  int64
	ServiceID int64
	StartsAt  time.Time
	EndsAt    time.Time // StartsAt + длительность услуги, фиксируется при создании
	Status    Status
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter — явная структура фильтра списка; nil-поле значит «не фильтровать».
type Filter struct {
	UserID    *int64
	MasterID  *int64
	ServiceID *int64
	Status    *Status
	From      *time.Time
	To        *time.Time
}

type Page struct {
	Items      []Appointment
	Total      int
	Page       int
	Limit      int
	TotalPages int
}
