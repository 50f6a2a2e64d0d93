package api

import (
	"time"

	"github.com/Spok95/salon-bot/internal/domain/appointments"
	"github.com/Spok95/salon-bot/internal/domain/catalog"
	"github.com/Spok95/salon-bot/internal/domain/masters"
	"github.com/Spok95/salon-bot/internal/domain/reviews"
	"github.com/Spok95/salon-bot/internal/domain/schedule"
	"github.com/Spok95/salon-bot/internal/domain/users"
)

// telegramId сериализуется строкой: идентификаторы Telegram не обязаны
// влезать в безопасный диапазон чисел JavaScript.
type UserDTO struct {
	ID         int64     `json:"id"`
	TelegramID int64     `json:"telegramId,string"`
	Username   string    `json:"username,omitempty"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toUserDTO(u *users.User) UserDTO {
	return UserDTO{
		ID: u.ID, TelegramID: u.TelegramID, Username: u.Username,
		FirstName: u.FirstName, LastName: u.LastName, Phone: u.Phone,
		CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
	}
}

type AppointmentDTO struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	MasterID  int64     `json:"masterId"`
	ServiceID int64     `json:"serviceId"`
	StartsAt  time.Time `json:"startsAt"`
	EndsAt    time.Time `json:"endsAt"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toAppointmentDTO(a *appointments.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID: a.ID, UserID: a.UserID, MasterID: a.MasterID, ServiceID: a.ServiceID,
		StartsAt: a.StartsAt, EndsAt: a.EndsAt, Status: string(a.Status),
		Notes: a.Notes, CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt,
	}
}

type PageDTO struct {
	Items      []AppointmentDTO `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"totalPages"`
}

func toPageDTO(p *appointments.Page) PageDTO {
	items := make([]AppointmentDTO, 0, len(p.Items))
	for i := range p.Items {
		items = append(items, toAppointmentDTO(&p.Items[i]))
	}
	return PageDTO{Items: items, Total: p.Total, Page: p.Page, Limit: p.Limit, TotalPages: p.TotalPages}
}

type MasterDTO struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization,omitempty"`
}

func toMasterDTOs(ms []masters.Master) []MasterDTO {
	out := make([]MasterDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, MasterDTO{ID: m.ID, Name: m.Name, Specialization: m.Specialization})
	}
	return out
}

type ServiceDTO struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"durationMin"`
}

func toServiceDTOs(ss []catalog.Service) []ServiceDTO {
	out := make([]ServiceDTO, 0, len(ss))
	for _, s := range ss {
		out = append(out, ServiceDTO{ID: s.ID, Name: s.Name, Price: s.Price, DurationMin: s.DurationMin})
	}
	return out
}

type SlotDTO struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}

func toSlotDTOs(slots []schedule.Slot) []SlotDTO {
	out := make([]SlotDTO, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotDTO{Start: s.Start, End: s.End, Available: s.Available})
	}
	return out
}

type ReviewDTO struct {
	ID        int64     `json:"id"`
	MasterID  int64     `json:"masterId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toReviewDTOs(rs []reviews.Review) []ReviewDTO {
	out := make([]ReviewDTO, 0, len(rs))
	for _, r := range rs {
		out = append(out, ReviewDTO{ID: r.ID, MasterID: r.MasterID, Rating: r.Rating, Comment: r.Comment, CreatedAt: r.CreatedAt})
	}
	return out
}
