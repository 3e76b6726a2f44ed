package user

import (
	"context"
	"errors"
	"io"
	"log"

	"digitalshop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const userColumns = `id::text, email, password_hash, COALESCE(full_name, ''), role, COALESCE(photo_url, ''), created_at`

func (r *postgresRepo) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	const q = `
INSERT INTO users (email, password_hash, full_name, role)
VALUES ($1, $2, NULLIF($3, ''), $4)
RETURNING id::text, created_at
`
	role := u.Role
	if role == "" {
		role = domain.RoleUser
	}
	out := u
	out.Role = role
	err := r.pool.QueryRow(ctx, q, u.Email, u.PasswordHash, u.FullName, role).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("user repo: create %s error=%v", u.Email, err)
		return nil, err
	}
	r.logger.Printf("user repo: created id=%s email=%s", out.ID, out.Email)
	return &out, nil
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.fetch(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.fetch(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// UpdateProfile merges the provided fields into the existing row; nil fields
// are left untouched.
func (r *postgresRepo) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*domain.User, error) {
	const q = `
UPDATE users
SET full_name = COALESCE($2, full_name),
    photo_url = COALESCE($3, photo_url)
WHERE id = $1
RETURNING ` + userColumns + `
`
	return r.scanRow(r.pool.QueryRow(ctx, q, id, update.FullName, update.PhotoURL))
}

func (r *postgresRepo) ListRecent(ctx context.Context, limit int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &u.PhotoURL, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *postgresRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postgresRepo) fetch(ctx context.Context, query string, args ...interface{}) (*domain.User, error) {
	return r.scanRow(r.pool.QueryRow(ctx, query, args...))
}

func (r *postgresRepo) scanRow(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &u.PhotoURL, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
