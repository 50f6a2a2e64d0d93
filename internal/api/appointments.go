package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/Spok95/salon-bot/internal/domain/appointments"
	"github.com/Spok95/salon-bot/pkg/response"
)

type createAppointmentRequest struct {
	TelegramID telegramID `json:"telegramId"`
	MasterID   int64      `json:"masterId"`
	ServiceID  int64      `json:"serviceId"`
	StartsAt   string     `json:"startsAt"` // RFC3339
	Notes      string     `json:"notes"`
}

// CreateAppointment — POST /appointments
func (a *API) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	const op = "api.CreateAppointment"

	var req createAppointmentRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		a.writeError(w, r, http.StatusBadRequest, response.INVALID_INPUT, "failed to decode request")
		return
	}
	if req.TelegramID <= 0 || req.MasterID <= 0 || req.ServiceID <= 0 {
		a.writeError(w, r, http.StatusBadRequest, response.INVALID_INPUT, "telegramId, masterId and serviceId are required")
		return
	}
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		a.writeError(w, r, http.StatusBadRequest, response.INVALID_INPUT, "startsAt must be RFC3339")
		return
	}

	u, err := a.users.GetByTelegramID(r.Context(), int64(req.TelegramID))
	if err != nil {
		a.writeDomainError(w, r, op, err)
		return
	}
	if u == nil {
		a.writeError(w, r, http.StatusNotFound, response.NOT_FOUND, "user not found")
		return
	}

	created, err := a.lifecycle.Create(r.Context(), u.ID, req.MasterID, req.ServiceID, startsAt.In(a.loc), req.Notes)
	if err != nil {
		a.writeDomainError(w, r, op, err)
		return
	}

	a.cache.Clear()
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OK(toAppointmentDTO(created)))
}

// ConfirmAppointment — POST /appointments/{id}/confirm
func (a *API) ConfirmAppointment(w http.ResponseWriter, r *http.Request) {
	a.transition(w, r, appointments.StatusConfirmed)
}

// CompleteAppointment — POST /appointments/{id}/complete
func (a *API) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	a.transition(w, r, appointments.StatusCompleted)
}

// CancelAppointment — POST /appointments/{id}/cancel. Повторная отмена —
// не ошибка.
func (a *API) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	const op = "api.CancelAppointment"

	id, ok := idParam(r)
	if !ok {
		a.writeError(w, r, http.StatusBadRequest, response.INVALID_INPUT, "invalid appointment id")
		return
	}
	cancelled, err := a.lifecycle.Cancel(r.Context(), id)
	if err != nil {
		a.writeDomainError(w, r, op, err)
		return
	}
	a.cache.Clear()
	render.JSON(w, r, response.OK(toAppointmentDTO(cancelled)))
}

func (a *API) transition(w http.ResponseWriter, r *http.Request, target appointments.Status) {
	const op = "api.transition"

	id, ok := idParam(r)
	if !ok {
		a.writeError(w, r, http.StatusBadRequest, response.INVALID_INPUT, "invalid appointment id")
		return
	}
	updated, err := a.lifecycle.Transition(r.Context(), id, target)
	if err != nil {
		a.writeDomainError(w, r, op, err)
		return
	}
	a.cache.Clear()
	render.JSON(w, r, response.OK(toAppointmentDTO(updated)))
}

// MyAppointments — GET /user/me/appointments?telegramId=&status=&page=&limit=
func (a *API) MyAppointments(w http.ResponseWriter, r *http.Request) {
	const op = "api.MyAppointments"

	u := a.resolveUser(r.Context(), w, r)
	if u == nil {
		return
	}

	f := appointments.Filter{UserID: &u.ID}
	if raw := r.URL.Query().Get("status"); raw != "" {
		st := appointments.Status(raw)
		if !st.Valid() {
			a.writeError(w, r, http.StatusBadRequest, response.INVALID_INPUT, "unknown status")
			return
		}
		f.Status = &st
	}

	page := intParam(r, "page", 1)
	limit := intParam(r, "limit", 10)

	p, err := a.lifecycle.List(r.Context(), f, page, limit)
	if err != nil {
		a.writeDomainError(w, r, op, err)
		return
	}
	render.JSON(w, r, response.OK(toPageDTO(p)))
}

func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func intParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
