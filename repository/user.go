package repository

import (
	"context"

	"github.com/taskflow/backend/domain"
)

// UserRepository stores the local mirror of provider identities.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Upsert(ctx context.Context, user *domain.User) error
}
