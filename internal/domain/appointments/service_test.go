package appointments

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/Spok95/salon-bot/internal/domain/catalog"
	"github.com/Spok95/salon-bot/internal/domain/masters"
	"github.com/Spok95/salon-bot/pkg/response"
)

type fakeStore struct {
	nextID int64
	items  map[int64]*Appointment
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, items: map[int64]*Appointment{}}
}

func (s *fakeStore) GetByID(_ context.Context, id int64) (*Appointment, error) {
	a, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (s *fakeStore) Insert(_ context.Context, a Appointment) (*Appointment, error) {
	a.ID = s.nextID
	s.nextID++
	a.Status = StatusPending
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	s.items[a.ID] = &a
	cp := a
	return &cp, nil
}

func (s *fakeStore) HasOverlap(_ context.Context, masterID int64, from, to time.Time) (bool, error) {
	for _, a := range s.items {
		if a.MasterID != masterID || a.Status == StatusCancelled {
			continue
		}
		if a.StartsAt.Before(to) && from.Before(a.EndsAt) {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) UpdateStatus(_ context.Context, id int64, from, to Status) (*Appointment, error) {
	a, ok := s.items[id]
	if !ok || a.Status != from {
		return nil, nil
	}
	a.Status = to
	a.UpdatedAt = time.Now()
	cp := *a
	return &cp, nil
}

func (s *fakeStore) List(_ context.Context, f Filter, offset, limit int) ([]Appointment, int, error) {
	var all []Appointment
	for _, a := range s.items {
		if f.Status != nil && a.Status != *f.Status {
			continue
		}
		if f.UserID != nil && a.UserID != *f.UserID {
			continue
		}
		all = append(all, *a)
	}
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

type fakeMasters struct {
	master *masters.Master
	sched  map[int]*masters.ScheduleEntry
}

func (f *fakeMasters) GetByID(_ context.Context, id int64) (*masters.Master, error) {
	if f.master == nil || f.master.ID != id {
		return nil, nil
	}
	return f.master, nil
}

func (f *fakeMasters) GetSchedule(_ context.Context, _ int64, weekday int) (*masters.ScheduleEntry, error) {
	return f.sched[weekday], nil
}

type fakeCatalog struct{ svc *catalog.Service }

func (f *fakeCatalog) GetServiceByID(_ context.Context, id int64) (*catalog.Service, error) {
	if f.svc == nil || f.svc.ID != id {
		return nil, nil
	}
	return f.svc, nil
}

// Понедельник 2026-03-02, мастер работает 09:00–18:00, услуга на 60 минут.
func newTestService(store *fakeStore) *Service {
	md := &fakeMasters{
		master: &masters.Master{ID: 1, Name: "Анна", Active: true},
		sched: map[int]*masters.ScheduleEntry{
			1: {MasterID: 1, Weekday: 1, StartTime: "09:00", EndTime: "18:00", IsWorking: true},
			2: {MasterID: 1, Weekday: 2, StartTime: "09:00", EndTime: "18:00", IsWorking: false},
		},
	}
	cd := &fakeCatalog{svc: &catalog.Service{ID: 7, Name: "Стрижка", DurationMin: 60, Active: true}}
	log := slog.New(slog.DiscardHandler)
	return NewService(log, store, md, cd, nil)
}

func monday(hh, mm int) time.Time {
	return time.Date(2026, 3, 2, hh, mm, 0, 0, time.UTC)
}

func TestCreateBookingScenario(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeStore())

	// 10:00 при свободном дне — pending
	a, err := svc.Create(ctx, 1, 1, 7, monday(10, 0), "")
	if err != nil {
		t.Fatalf("create 10:00: %v", err)
	}
	if a.Status != StatusPending {
		t.Fatalf("expected pending, got %s", a.Status)
	}
	if !a.EndsAt.Equal(monday(11, 0)) {
		t.Fatalf("ends_at must be starts_at + duration, got %s", a.EndsAt)
	}

	// 10:30 пересекается — Conflict
	if _, err := svc.Create(ctx, 1, 1, 7, monday(10, 30), ""); !errors.Is(err, response.ErrConflict) {
		t.Fatalf("create 10:30: expected ErrConflict, got %v", err)
	}

	// 11:00 не пересекается — ок
	if _, err := svc.Create(ctx, 1, 1, 7, monday(11, 0), ""); err != nil {
		t.Fatalf("create 11:00: %v", err)
	}
}

func TestCreateOutOfSchedule(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeStore())

	// нерабочий день
	tuesday := monday(10, 0).AddDate(0, 0, 1)
	if _, err := svc.Create(ctx, 1, 1, 7, tuesday, ""); !errors.Is(err, response.ErrOutOfSchedule) {
		t.Fatalf("non-working day: expected ErrOutOfSchedule, got %v", err)
	}

	// день без записи расписания
	sunday := monday(10, 0).AddDate(0, 0, 6)
	if _, err := svc.Create(ctx, 1, 1, 7, sunday, ""); !errors.Is(err, response.ErrOutOfSchedule) {
		t.Fatalf("no schedule entry: expected ErrOutOfSchedule, got %v", err)
	}

	// раньше начала окна
	if _, err := svc.Create(ctx, 1, 1, 7, monday(8, 0), ""); !errors.Is(err, response.ErrOutOfSchedule) {
		t.Fatalf("before window: expected ErrOutOfSchedule, got %v", err)
	}

	// окно услуги вылезает за конец дня: 17:30 + 60 минут
	if _, err := svc.Create(ctx, 1, 1, 7, monday(17, 30), ""); !errors.Is(err, response.ErrOutOfSchedule) {
		t.Fatalf("past end of window: expected ErrOutOfSchedule, got %v", err)
	}

	// впритык к концу дня — допустимо
	if _, err := svc.Create(ctx, 1, 1, 7, monday(17, 0), ""); err != nil {
		t.Fatalf("17:00 should fit exactly: %v", err)
	}
}

func TestCreateUnknownRefs(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeStore())

	if _, err := svc.Create(ctx, 1, 99, 7, monday(10, 0), ""); !errors.Is(err, response.ErrNotFound) {
		t.Fatalf("unknown master: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Create(ctx, 1, 1, 99, monday(10, 0), ""); !errors.Is(err, response.ErrNotFound) {
		t.Fatalf("unknown service: expected ErrNotFound, got %v", err)
	}
}

func TestTransitionEdges(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newTestService(store)

	a, err := svc.Create(ctx, 1, 1, 7, monday(10, 0), "")
	if err != nil {
		t.Fatal(err)
	}

	// pending → completed запрещено
	if _, err := svc.Transition(ctx, a.ID, StatusCompleted); !errors.Is(err, response.ErrInvalidTransition) {
		t.Fatalf("pending->completed: expected ErrInvalidTransition, got %v", err)
	}

	// pending → confirmed → completed
	if _, err := svc.Transition(ctx, a.ID, StatusConfirmed); err != nil {
		t.Fatal(err)
	}
	done, err := svc.Transition(ctx, a.ID, StatusCompleted)
	if err != nil {
		t.Fatal(err)
	}
	if done.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", done.Status)
	}

	// терминальный статус отвергает всё
	for _, target := range []Status{StatusPending, StatusConfirmed, StatusCancelled} {
		if _, err := svc.Transition(ctx, a.ID, target); !errors.Is(err, response.ErrInvalidTransition) {
			t.Fatalf("completed->%s: expected ErrInvalidTransition, got %v", target, err)
		}
	}

	if _, err := svc.Transition(ctx, 555, StatusConfirmed); !errors.Is(err, response.ErrNotFound) {
		t.Fatalf("missing id: expected ErrNotFound, got %v", err)
	}
}

func TestCancelIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeStore())

	a, err := svc.Create(ctx, 1, 1, 7, monday(10, 0), "")
	if err != nil {
		t.Fatal(err)
	}

	first, err := svc.Cancel(ctx, a.ID)
	if err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	if first.Status != StatusCancelled {
		t.Fatalf("expected cancelled, got %s", first.Status)
	}

	second, err := svc.Cancel(ctx, a.ID)
	if err != nil {
		t.Fatalf("second cancel must be a no-op, got %v", err)
	}
	if second.Status != StatusCancelled {
		t.Fatalf("expected cancelled, got %s", second.Status)
	}
}

func TestCancelFreesSlot(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeStore())

	a, err := svc.Create(ctx, 1, 1, 7, monday(10, 0), "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Cancel(ctx, a.ID); err != nil {
		t.Fatal(err)
	}

	// отменённая запись не участвует в проверке пересечений
	if _, err := svc.Create(ctx, 2, 1, 7, monday(10, 30), ""); err != nil {
		t.Fatalf("slot must be free after cancel: %v", err)
	}
}

func TestListPagination(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newTestService(store)

	for i := 0; i < 5; i++ {
		if _, err := svc.Create(ctx, 1, 1, 7, monday(9+i, 0), ""); err != nil {
			t.Fatal(err)
		}
	}

	page, err := svc.List(ctx, Filter{}, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 5 || page.TotalPages != 3 {
		t.Fatalf("expected total=5 totalPages=3, got total=%d totalPages=%d", page.Total, page.TotalPages)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items on page, got %d", len(page.Items))
	}

	last, err := svc.List(ctx, Filter{}, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(last.Items) != 1 {
		t.Fatalf("expected 1 item on last page, got %d", len(last.Items))
	}

	// некорректный статус в фильтре
	bad := Status("unknown")
	if _, err := svc.List(ctx, Filter{Status: &bad}, 1, 10); !errors.Is(err, response.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
