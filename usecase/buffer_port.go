package usecase

import (
	"context"

	"github.com/taskflow/backend/domain"
)

// OperationBuffer abstracts the offline write buffer so use cases stay
// storage-agnostic. A buffered operation is replayed against the primary
// store once it is reachable again.
type OperationBuffer interface {
	BufferProfile(ctx context.Context, user *domain.User) error
	BufferTaskCreate(ctx context.Context, task *domain.Task) error
	BufferTaskChange(ctx context.Context, id string, patch domain.TaskPatch, entries []domain.Activity) error
	BufferTaskDelete(ctx context.Context, id string) error
}
