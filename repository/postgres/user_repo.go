package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskflow/backend/domain"
	"github.com/taskflow/backend/repository"
)

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed mirror of provider identities.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
	SELECT id, email, display_name, photo_url, created_at, updated_at
	FROM users
	WHERE id = $1
	`

	var user domain.User
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.PhotoURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Upsert(ctx context.Context, user *domain.User) error {
	if user == nil || user.ID == "" {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO users (id, email, display_name, photo_url)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (id) DO UPDATE
	SET email = EXCLUDED.email,
		display_name = EXCLUDED.display_name,
		photo_url = EXCLUDED.photo_url,
		updated_at = NOW()
	RETURNING created_at, updated_at
	`

	return r.pool.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.DisplayName,
		user.PhotoURL,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}
