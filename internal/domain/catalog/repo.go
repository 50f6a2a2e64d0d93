package catalog

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) CreateService(ctx context.Context, name string, price float64, durationMin int) (*Service, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO services (name, price, duration_min) VALUES ($1,$2,$3)
		ON CONFLICT (name) DO NOTHING
		RETURNING id, name, price, duration_min, active, created_at, updated_at
	`, name, price, durationMin)
	var s Service
	err := row.Scan(&s.ID, &s.Name, &s.Price, &s.DurationMin, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err == pgx.ErrNoRows {
		// Уже есть — вернём существующую
		return r.GetServiceByName(ctx, name)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repo) GetServiceByID(ctx context.Context, id int64) (*Service, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, price, duration_min, active, created_at, updated_at
		FROM services WHERE id = $1
	`, id)
	return scanService(row)
}

func (r *Repo) GetServiceByName(ctx context.Context, name string) (*Service, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, price, duration_min, active, created_at, updated_at
		FROM services WHERE name = $1
	`, name)
	return scanService(row)
}

func (r *Repo) ListActiveServices(ctx context.Context) ([]Service, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, price, duration_min, active, created_at, updated_at
		FROM services WHERE active ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Service
	for rows.Next() {
		var s Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Price, &s.DurationMin, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanService(row pgx.Row) (*Service, error) {
	var s Service
	if err := row.Scan(&s.ID, &s.Name, &s.Price, &s.DurationMin, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
