package masters

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) GetByID(ctx context.Context, id int64) (*Master, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, specialization, active, created_at, updated_at
		FROM masters WHERE id = $1
	`, id)
	var m Master
	if err := row.Scan(&m.ID, &m.Name, &m.Specialization, &m.Active, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *Repo) ListActive(ctx context.Context) ([]Master, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, specialization, active, created_at, updated_at
		FROM masters WHERE active ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Master
	for rows.Next() {
		var m Master
		if err := rows.Scan(&m.ID, &m.Name, &m.Specialization, &m.Active, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetSchedule — запись расписания на день недели; nil, если записи нет.
func (r *Repo) GetSchedule(ctx context.Context, masterID int64, weekday int) (*ScheduleEntry, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, master_id, weekday, start_time, end_time, is_working
		FROM master_schedules WHERE master_id = $1 AND weekday = $2
	`, masterID, weekday)
	var s ScheduleEntry
	if err := row.Scan(&s.ID, &s.MasterID, &s.Weekday, &s.StartTime, &s.EndTime, &s.IsWorking); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// SetSchedule — upsert по (master_id, weekday).
func (r *Repo) SetSchedule(ctx context.Context, e ScheduleEntry) (*ScheduleEntry, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO master_schedules (master_id, weekday, start_time, end_time, is_working)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (master_id, weekday) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time   = EXCLUDED.end_time,
			is_working = EXCLUDED.is_working
		RETURNING id, master_id, weekday, start_time, end_time, is_working
	`, e.MasterID, e.Weekday, e.StartTime, e.EndTime, e.IsWorking)
	var s ScheduleEntry
	if err := row.Scan(&s.ID, &s.MasterID, &s.Weekday, &s.StartTime, &s.EndTime, &s.IsWorking); err != nil {
		return nil, err
	}
	return &s, nil
}
