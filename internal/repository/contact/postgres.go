package contact

import (
	"context"

	"digitalshop/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, msg domain.ContactMessage) (*domain.ContactMessage, error) {
	const q = `
INSERT INTO contact_messages (name, email, subject, message, submitted_by)
VALUES ($1, $2, $3, $4, NULLIF($5, ''))
RETURNING id::text, created_at
`
	out := msg
	if err := r.pool.QueryRow(ctx, q, msg.Name, msg.Email, msg.Subject, msg.Message, msg.SubmittedBy).Scan(&out.ID, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) ListRecent(ctx context.Context, limit int) ([]domain.ContactMessage, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id::text, name, email, subject, message, COALESCE(submitted_by::text, ''), created_at
FROM contact_messages
ORDER BY created_at DESC
LIMIT $1
`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ContactMessage
	for rows.Next() {
		var m domain.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.SubmittedBy, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *postgresRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contact_messages`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
