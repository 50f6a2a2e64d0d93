package masters

import (
	"fmt"
	"time"
)

type Master struct {
	ID             int64
	Name           string
	Specialization string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ScheduleEntry — рабочее окно мастера на день недели (0 — воскресенье).
// На пару (мастер, день) запись не больше одной.
type ScheduleEntry struct {
	ID        int64
	MasterID  int64
	Weekday   int
	StartTime string // "HH:MM"
	EndTime   string // "HH:MM"
	IsWorking bool
}

// WindowOn возвращает рабочее окно [start, end) в координатах конкретной даты.
func (s ScheduleEntry) WindowOn(date time.Time) (time.Time, time.Time, error) {
	start, err := atTime(date, s.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := atTime(date, s.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func atTime(date time.Time, hhmm string) (time.Time, error) {
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &h, &m); err != nil {
		return time.Time{}, fmt.Errorf("bad time %q: %w", hhmm, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return time.Time{}, fmt.Errorf("bad time %q", hhmm)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location()), nil
}
