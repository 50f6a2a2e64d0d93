package appointments

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/salon-bot/pkg/response"
)

const cols = `id, user_id, master_id, service_id, starts_at, ends_at, status, COALESCE(notes,''), created_at, updated_at`

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) GetByID(ctx context.Context, id int64) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+cols+` FROM appointments WHERE id = $1`, id)
	return scanAppointment(row)
}

// Insert создаёт запись в pending. Гонку двух одновременных создании на одно
// окно закрывает exclusion constraint в БД: проигравший получает ErrConflict.
func (r *Repo) Insert(ctx context.Context, a Appointment) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO appointments (user_id, master_id, service_id, starts_at, ends_at, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6,NULLIF($7,''))
		RETURNING `+cols+`
	`, a.UserID, a.MasterID, a.ServiceID, a.StartsAt, a.EndsAt, string(StatusPending), a.Notes)

	out, err := scanAppointment(row)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23P01 exclusion_violation — пересечение окон по мастеру
		if errors.As(err, &pgErr) && pgErr.Code == "23P01" {
			return nil, response.ErrConflict
		}
		return nil, err
	}
	return out, nil
}

// HasOverlap — есть ли у мастера неотменённая запись, пересекающая [from, to).
func (r *Repo) HasOverlap(ctx context.Context, masterID int64, from, to time.Time) (bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE master_id = $1
			  AND status <> 'cancelled'
			  AND starts_at < $3 AND ends_at > $2
		)
	`, masterID, from, to)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// UpdateStatus переводит запись из from в to. Условие WHERE status=$from
// не даёт параллельным переходам перешагнуть машину статусов; nil — если
// запись уже не в from.
func (r *Repo) UpdateStatus(ctx context.Context, id int64, from, to Status) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE appointments SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2
		RETURNING `+cols,
		id, string(from), string(to))
	return scanAppointment(row)
}

// ListBusy — неотменённые записи мастера, пересекающие [from, to), по возрастанию времени.
func (r *Repo) ListBusy(ctx context.Context, masterID int64, from, to time.Time) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+cols+` FROM appointments
		WHERE master_id = $1
		  AND status <> 'cancelled'
		  AND starts_at < $3 AND ends_at > $2
		ORDER BY starts_at
	`, masterID, from, to)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// List — постраничный список по фильтру, новые сверху (starts_at DESC).
func (r *Repo) List(ctx context.Context, f Filter, offset, limit int) ([]Appointment, int, error) {
	where := ` WHERE ($1::bigint IS NULL OR user_id = $1)
		AND ($2::bigint IS NULL OR master_id = $2)
		AND ($3::bigint IS NULL OR service_id = $3)
		AND ($4::text IS NULL OR status = $4)
		AND ($5::timestamptz IS NULL OR starts_at >= $5)
		AND ($6::timestamptz IS NULL OR starts_at < $6)`

	var status *string
	if f.Status != nil {
		s := string(*f.Status)
		status = &s
	}
	args := []any{f.UserID, f.MasterID, f.ServiceID, status, f.From, f.To}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM appointments`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+cols+` FROM appointments`+where+` ORDER BY starts_at DESC OFFSET $7 LIMIT $8`,
		append(args, offset, limit)...)
	if err != nil {
		return nil, 0, err
	}
	items, err := collect(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func collect(rows pgx.Rows) ([]Appointment, error) {
	defer rows.Close()
	var out []Appointment
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(&a.ID, &a.UserID, &a.MasterID, &a.ServiceID, &a.StartsAt, &a.EndsAt,
			&a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	if err := row.Scan(&a.ID, &a.UserID, &a.MasterID, &a.ServiceID, &a.StartsAt, &a.EndsAt,
		&a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}
