package reviews

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, rv Review) (*Review, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO reviews (user_id, master_id, rating, comment)
		VALUES ($1,$2,$3,$4)
		RETURNING id, user_id, master_id, rating, comment, created_at
	`, rv.UserID, rv.MasterID, rv.Rating, rv.Comment)
	var out Review
	if err := row.Scan(&out.ID, &out.UserID, &out.MasterID, &out.Rating, &out.Comment, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Repo) ListByUser(ctx context.Context, userID int64) ([]Review, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, master_id, rating, comment, created_at
		FROM reviews WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Review
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.MasterID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
