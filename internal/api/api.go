package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/Spok95/salon-bot/internal/cache"
	"github.com/Spok95/salon-bot/internal/domain/appointments"
	"github.com/Spok95/salon-bot/internal/domain/catalog"
	"github.com/Spok95/salon-bot/internal/domain/masters"
	"github.com/Spok95/salon-bot/internal/domain/reviews"
	"github.com/Spok95/salon-bot/internal/domain/schedule"
	"github.com/Spok95/salon-bot/internal/domain/users"
	"github.com/Spok95/salon-bot/pkg/response"
)

type UserStore interface {
	UpsertFromTelegram(ctx context.Context, tg users.Telegram) (*users.User, error)
	GetByTelegramID(ctx context.Context, tgID int64) (*users.User, error)
}

type Lifecycle interface {
	Create(ctx context.Context, userID, masterID, serviceID int64, startsAt time.Time, notes string) (*appointments.Appointment, error)
	Transition(ctx context.Context, id int64, target appointments.Status) (*appointments.Appointment, error)
	Cancel(ctx context.Context, id int64) (*appointments.Appointment, error)
	List(ctx context.Context, f appointments.Filter, page, limit int) (*appointments.Page, error)
}

type SlotEngine interface {
	GetSlots(ctx context.Context, masterID, serviceID int64, date time.Time) ([]schedule.Slot, error)
}

type MasterLister interface {
	ListActive(ctx context.Context) ([]masters.Master, error)
}

type ServiceLister interface {
	ListActiveServices(ctx context.Context) ([]catalog.Service, error)
}

type ReviewLister interface {
	ListByUser(ctx context.Context, userID int64) ([]reviews.Review, error)
}

// API — HTTP-ручки для Web App. Каталоги читаются через TTL-кэш; любая
// мутация записи инвалидирует его целиком.
type API struct {
	log       *slog.Logger
	users     UserStore
	lifecycle Lifecycle
	slots     SlotEngine
	masters   MasterLister
	catalog   ServiceLister
	reviews   ReviewLister
	cache     *cache.Cache[any]
	cacheTTL  time.Duration
	loc       *time.Location
	adminTgID int64
}

func New(log *slog.Logger, us UserStore, lc Lifecycle, se SlotEngine,
	ml MasterLister, sl ServiceLister, rl ReviewLister,
	c *cache.Cache[any], cacheTTL time.Duration, loc *time.Location, adminTgID int64) *API {

	if loc == nil {
		loc = time.UTC
	}
	return &API{
		log: log, users: us, lifecycle: lc, slots: se,
		masters: ml, catalog: sl, reviews: rl,
		cache: c, cacheTTL: cacheTTL, loc: loc, adminTgID: adminTgID,
	}
}

func (a *API) writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	w.WriteHeader(status)
	render.JSON(w, r, response.Error(code, msg))
}

// writeDomainError маппит ошибки доменного слоя на статус и код; всё
// неизвестное — generic REQUEST_FAILED без деталей наружу.
func (a *API) writeDomainError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, response.ErrInvalidInput):
		a.writeError(w, r, http.StatusBadRequest, response.INVALID_INPUT, "invalid input")
	case errors.Is(err, response.ErrNotFound):
		a.writeError(w, r, http.StatusNotFound, response.NOT_FOUND, "resource not found")
	case errors.Is(err, response.ErrConflict):
		a.writeError(w, r, http.StatusConflict, response.CONFLICT, "time window already booked")
	case errors.Is(err, response.ErrOutOfSchedule):
		a.writeError(w, r, http.StatusUnprocessableEntity, response.OUT_OF_SCHEDULE, "outside the master's working hours")
	case errors.Is(err, response.ErrInvalidTransition):
		a.writeError(w, r, http.StatusConflict, response.INVALID_TRANSITION, "status transition not allowed")
	default:
		a.log.Error("request failed", "op", op, "err", err)
		a.writeError(w, r, http.StatusInternalServerError, response.FAILED_REQUEST, "request failed")
	}
}

// resolveUser достаёт пользователя по telegramId из query. Никаких
// захардкоженных «текущих пользователей»: нет telegramId — нет ответа.
func (a *API) resolveUser(ctx context.Context, w http.ResponseWriter, r *http.Request) *users.User {
	tgID, ok := telegramIDParam(r)
	if !ok {
		a.writeError(w, r, http.StatusBadRequest, response.INVALID_INPUT, "telegramId is required")
		return nil
	}
	u, err := a.users.GetByTelegramID(ctx, tgID)
	if err != nil {
		a.writeDomainError(w, r, "api.resolveUser", err)
		return nil
	}
	if u == nil {
		a.writeError(w, r, http.StatusNotFound, response.NOT_FOUND, "user not found")
		return nil
	}
	return u
}
