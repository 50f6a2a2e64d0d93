package schedule

import (
	"context"
	"log/slog"
	"time"

	"github.com/Spok95/salon-bot/internal/domain/appointments"
	"github.com/Spok95/salon-bot/internal/domain/catalog"
	"github.com/Spok95/salon-bot/internal/domain/masters"
	"github.com/Spok95/salon-bot/pkg/response"
)

type MasterDirectory interface {
	GetByID(ctx context.Context, id int64) (*masters.Master, error)
	GetSchedule(ctx context.Context, masterID int64, weekday int) (*masters.ScheduleEntry, error)
}

type ServiceDirectory interface {
	GetServiceByID(ctx context.Context, id int64) (*catalog.Service, error)
}

type BusyLister interface {
	ListBusy(ctx context.Context, masterID int64, from, to time.Time) ([]appointments.Appointment, error)
}

// Engine считает доступные слоты мастера на дату из его недельного
// расписания и существующих неотменённых записей.
type Engine struct {
	log     *slog.Logger
	masters MasterDirectory
	catalog ServiceDirectory
	busy    BusyLister
	stepMin int // 0 — шаг равен длительности услуги
}

func NewEngine(log *slog.Logger, md MasterDirectory, sd ServiceDirectory, busy BusyLister, stepMin int) *Engine {
	return &Engine{log: log, masters: md, catalog: sd, busy: busy, stepMin: stepMin}
}

// GetSlots возвращает слоты на календарный день date по возрастанию времени.
// Нерабочий день или отсутствие расписания — пустой результат, не ошибка.
func (e *Engine) GetSlots(ctx context.Context, masterID, serviceID int64, date time.Time) ([]Slot, error) {
	svc, err := e.catalog.GetServiceByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil || !svc.Active {
		return nil, response.ErrNotFound
	}

	m, err := e.masters.GetByID(ctx, masterID)
	if err != nil {
		return nil, err
	}
	if m == nil || !m.Active {
		return nil, response.ErrNotFound
	}

	sched, err := e.masters.GetSchedule(ctx, masterID, int(date.Weekday()))
	if err != nil {
		return nil, err
	}
	if sched == nil || !sched.IsWorking {
		return []Slot{}, nil
	}

	wStart, wEnd, err := sched.WindowOn(date)
	if err != nil {
		return nil, err
	}

	appts, err := e.busy.ListBusy(ctx, masterID, wStart, wEnd)
	if err != nil {
		return nil, err
	}
	busy := make([]Interval, 0, len(appts))
	for _, a := range appts {
		busy = append(busy, Interval{Start: a.StartsAt, End: a.EndsAt})
	}

	step := time.Duration(e.stepMin) * time.Minute
	if step <= 0 {
		step = svc.Duration()
	}
	return BuildSlots(wStart, wEnd, svc.Duration(), step, busy), nil
}
