package repository

import (
	"context"

	"github.com/taskflow/backend/domain"
)

// SessionRepository persists sign-in sessions so they survive page reloads.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
	Extend(ctx context.Context, id string, ttlSeconds int) error
}
