package appointments

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Spok95/salon-bot/internal/domain/catalog"
	"github.com/Spok95/salon-bot/internal/domain/masters"
	"github.com/Spok95/salon-bot/internal/infra/metrics"
	"github.com/Spok95/salon-bot/internal/lock"
	"github.com/Spok95/salon-bot/pkg/response"
)

const (
	defaultLimit = 10
	maxLimit     = 100

	lockTTL = 5 * time.Second
)

type Store interface {
	GetByID(ctx context.Context, id int64) (*Appointment, error)
	Insert(ctx context.Context, a Appointment) (*Appointment, error)
	HasOverlap(ctx context.Context, masterID int64, from, to time.Time) (bool, error)
	UpdateStatus(ctx context.Context, id int64, from, to Status) (*Appointment, error)
	List(ctx context.Context, f Filter, offset, limit int) ([]Appointment, int, error)
}

type MasterDirectory interface {
	GetByID(ctx context.Context, id int64) (*masters.Master, error)
	GetSchedule(ctx context.Context, masterID int64, weekday int) (*masters.ScheduleEntry, error)
}

type ServiceDirectory interface {
	GetServiceByID(ctx context.Context, id int64) (*catalog.Service, error)
}

// Service — жизненный цикл записи: создание, переходы статусов, списки.
type Service struct {
	log     *slog.Logger
	store   Store
	masters MasterDirectory
	catalog ServiceDirectory
	locker  lock.Locker // nil — без лока, целостность держит БД
}

func NewService(log *slog.Logger, store Store, md MasterDirectory, sd ServiceDirectory, locker lock.Locker) *Service {
	return &Service{log: log, store: store, masters: md, catalog: sd, locker: locker}
}

// Create создаёт запись в pending. Ошибки: ErrNotFound (мастер/услуга не
// найдены или неактивны), ErrOutOfSchedule (вне рабочего окна),
// ErrConflict (пересечение с другой неотменённой записью).
func (s *Service) Create(ctx context.Context, userID, masterID, serviceID int64, startsAt time.Time, notes string) (*Appointment, error) {
	svc, err := s.catalog.GetServiceByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil || !svc.Active {
		return nil, response.ErrNotFound
	}

	m, err := s.masters.GetByID(ctx, masterID)
	if err != nil {
		return nil, err
	}
	if m == nil || !m.Active {
		return nil, response.ErrNotFound
	}

	endsAt := startsAt.Add(svc.Duration())

	sched, err := s.masters.GetSchedule(ctx, masterID, int(startsAt.Weekday()))
	if err != nil {
		return nil, err
	}
	if sched == nil || !sched.IsWorking {
		return nil, response.ErrOutOfSchedule
	}
	wStart, wEnd, err := sched.WindowOn(startsAt)
	if err != nil {
		return nil, err
	}
	if startsAt.Before(wStart) || endsAt.After(wEnd) {
		return nil, response.ErrOutOfSchedule
	}

	if s.locker != nil {
		key := fmt.Sprintf("appt:%d:%d", masterID, startsAt.Unix())
		ok, lerr := s.locker.Lock(ctx, key, lockTTL)
		if lerr != nil {
			// Redis недоступен — продолжаем, конфликт всё равно поймает constraint
			s.log.Warn("slot lock unavailable", "err", lerr)
		} else if !ok {
			return nil, response.ErrConflict
		} else {
			defer func() { _ = s.locker.Unlock(ctx, key) }()
		}
	}

	busy, err := s.store.HasOverlap(ctx, masterID, startsAt, endsAt)
	if err != nil {
		return nil, err
	}
	if busy {
		return nil, response.ErrConflict
	}

	created, err := s.store.Insert(ctx, Appointment{
		UserID:    userID,
		MasterID:  masterID,
		ServiceID: serviceID,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
		Notes:     notes,
	})
	if err != nil {
		return nil, err
	}
	metrics.AppointmentsCreated.Inc()
	s.log.Info("appointment created", "id", created.ID, "master_id", masterID, "starts_at", startsAt)
	return created, nil
}

// Transition переводит запись в target по рёбрам машины статусов.
func (s *Service) Transition(ctx context.Context, id int64, target Status) (*Appointment, error) {
	if !target.Valid() || target == StatusPending {
		// в pending не возвращаются
		return nil, response.ErrInvalidTransition
	}

	a, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, response.ErrNotFound
	}
	if !a.Status.CanTransition(target) {
		return nil, response.ErrInvalidTransition
	}

	updated, err := s.store.UpdateStatus(ctx, id, a.Status, target)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// статус успели поменять параллельно
		return nil, response.ErrInvalidTransition
	}
	metrics.AppointmentTransitions.WithLabelValues(string(target)).Inc()
	s.log.Info("appointment transitioned", "id", id, "from", a.Status, "to", target)
	return updated, nil
}

// Cancel — идемпотентная отмена: повторный вызов по уже отменённой записи
// возвращает её без ошибки (клиент может дублировать запросы).
func (s *Service) Cancel(ctx context.Context, id int64) (*Appointment, error) {
	a, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, response.ErrNotFound
	}
	if a.Status == StatusCancelled {
		return a, nil
	}
	return s.Transition(ctx, id, StatusCancelled)
}

// List — страница по фильтру; page с единицы, totalPages = ceil(total/limit).
func (s *Service) List(ctx context.Context, f Filter, page, limit int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if f.Status != nil && !f.Status.Valid() {
		return nil, response.ErrInvalidInput
	}

	items, total, err := s.store.List(ctx, f, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	return &Page{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}
