package repository

import (
	"context"

	"github.com/taskflow/backend/domain"
)

// TaskRepository owns all access to the task collection. Implementations
// must keep the activity log additive: Update appends entries without ever
// rewriting what is already persisted, so concurrent editors cannot lose
// each other's log lines (scalar fields remain last-write-wins).
type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	// ListByOwner returns every task belonging to owner, in no particular
	// order. An unknown owner yields an empty slice, not an error.
	ListByOwner(ctx context.Context, owner string) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch, entries []domain.Activity) error
	UpdateStatus(ctx context.Context, id string, status domain.Status) error
	// Delete is idempotent: removing an absent id is not an error.
	Delete(ctx context.Context, id string) error
}
