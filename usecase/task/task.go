package task

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/taskflow/backend/domain"
	"github.com/taskflow/backend/repository"
	"github.com/taskflow/backend/usecase"
)

type UseCase struct {
	tasks  repository.TaskRepository
	buffer usecase.OperationBuffer
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		buffer: buffer,
		logger: logger,
	}
}

// ListTasks fetches all of the owner's tasks and applies the view filters
// in-process. An empty owner yields an empty result without touching the
// store; callers group and sort the result themselves.
func (uc *UseCase) ListTasks(ctx context.Context, owner string, query Query) ([]domain.Task, error) {
	if owner == "" {
		return nil, nil
	}
	tasks, err := uc.tasks.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	return Filter(tasks, query), nil
}

func (uc *UseCase) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id)
}

// CreateTask persists a new task. The repository seeds the activity log
// with the single creation entry and assigns the id.
func (uc *UseCase) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		if uc.bufferCreate(ctx, task) {
			return task, nil
		}
		return nil, err
	}
	return created, nil
}

// UpdateTask diffs the supplied previous snapshot against the patch,
// then persists the scalar overwrites plus the additive log merge as one
// update. The caller owns the accuracy of the snapshot; no re-read happens
// here, so a concurrent editor's scalar fields can be overwritten while
// log entries from both editors survive.
func (uc *UseCase) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch, previous domain.Task) ([]domain.Activity, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	entries := domain.Changelog(previous, patch, time.Now())

	if err := uc.tasks.Update(ctx, id, patch, entries); err != nil {
		if uc.bufferChange(ctx, id, patch, entries) {
			return entries, nil
		}
		return nil, err
	}
	return entries, nil
}

// RemoveAttachment drops the attachment at the given position and records
// the removal. It is a pure positional delete: remaining attachments keep
// their order. The hosted object itself is not deleted.
func (uc *UseCase) RemoveAttachment(ctx context.Context, previous domain.Task, index int) error {
	if index < 0 || index >= len(previous.Attachments) {
		return domain.NewError(domain.ErrCodeInvalid, "attachment index out of range")
	}

	next := make([]string, 0, len(previous.Attachments)-1)
	next = append(next, previous.Attachments[:index]...)
	next = append(next, previous.Attachments[index+1:]...)

	_, err := uc.UpdateTask(ctx, previous.ID, domain.TaskPatch{Attachments: &next}, previous)
	return err
}

func (uc *UseCase) DeleteTask(ctx context.Context, id string) error {
	if err := uc.tasks.Delete(ctx, id); err != nil {
		if uc.bufferDelete(ctx, id) {
			return nil
		}
		return err
	}
	return nil
}

// BulkUpdateStatus applies the status to every id concurrently. There is no
// cross-item atomicity: individual failures are logged and swallowed, and
// the caller cannot tell a partial success from a total one. An empty id
// set or empty status is a no-op that never contacts the store.
func (uc *UseCase) BulkUpdateStatus(ctx context.Context, ids []string, status domain.Status) error {
	if len(ids) == 0 || status == "" {
		return nil
	}
	if !status.Valid() {
		return domain.NewError(domain.ErrCodeInvalid, "unknown status")
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if err := uc.tasks.UpdateStatus(ctx, id, status); err != nil {
				uc.logger.Error("bulk status update failed for task",
					zap.String("task_id", id),
					zap.String("status", string(status)),
					zap.Error(err))
				uc.bufferChange(ctx, id, domain.TaskPatch{Status: &status}, nil)
			}
		}(id)
	}
	wg.Wait()
	return nil
}

// BulkDelete removes every id concurrently with the same partial-failure
// shape as BulkUpdateStatus.
func (uc *UseCase) BulkDelete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if err := uc.tasks.Delete(ctx, id); err != nil {
				uc.logger.Error("bulk delete failed for task",
					zap.String("task_id", id),
					zap.Error(err))
				uc.bufferDelete(ctx, id)
			}
		}(id)
	}
	wg.Wait()
	return nil
}

func (uc *UseCase) bufferCreate(ctx context.Context, task *domain.Task) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferTaskCreate(ctx, task); err != nil {
		uc.logger.Error("failed to buffer task create", zap.Error(err))
		return false
	}
	uc.logger.Warn("task create buffered", zap.String("task_id", task.ID))
	return true
}

func (uc *UseCase) bufferChange(ctx context.Context, id string, patch domain.TaskPatch, entries []domain.Activity) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferTaskChange(ctx, id, patch, entries); err != nil {
		uc.logger.Error("failed to buffer task change", zap.String("task_id", id), zap.Error(err))
		return false
	}
	uc.logger.Warn("task change buffered", zap.String("task_id", id))
	return true
}

func (uc *UseCase) bufferDelete(ctx context.Context, id string) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferTaskDelete(ctx, id); err != nil {
		uc.logger.Error("failed to buffer task delete", zap.String("task_id", id), zap.Error(err))
		return false
	}
	uc.logger.Warn("task delete buffered", zap.String("task_id", id))
	return true
}
