package services

import (
	"context"
	"encoding/json"

	"github.com/taskflow/backend/domain"
	"github.com/taskflow/backend/internal/infrastructure/buffer"
	"github.com/taskflow/backend/usecase"
)

// BufferBridge adapts the buffer processor to the usecase.OperationBuffer
// port so use cases never see buffer item encoding.
type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferProfile(ctx context.Context, user *domain.User) error {
	if b.processor == nil || user == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return b.processor.Accept(ctx, buffer.Item{
		UserID:    user.ID,
		Entity:    buffer.EntityProfile,
		Operation: buffer.OperationChange,
		Data:      payload,
		Priority:  3,
	})
}

func (b *BufferBridge) BufferTaskCreate(ctx context.Context, task *domain.Task) error {
	if b.processor == nil || task == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return b.processor.Accept(ctx, buffer.Item{
		ID:        task.ID,
		UserID:    task.Owner,
		Entity:    buffer.EntityTask,
		Operation: buffer.OperationCreate,
		Data:      payload,
		Priority:  4,
	})
}

func (b *BufferBridge) BufferTaskChange(ctx context.Context, id string, patch domain.TaskPatch, entries []domain.Activity) error {
	if b.processor == nil || id == "" {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(buffer.TaskChange{TaskID: id, Patch: patch, Entries: entries})
	if err != nil {
		return err
	}
	return b.processor.Accept(ctx, buffer.Item{
		Entity:    buffer.EntityTask,
		Operation: buffer.OperationChange,
		Data:      payload,
		Priority:  4,
	})
}

func (b *BufferBridge) BufferTaskDelete(ctx context.Context, id string) error {
	if b.processor == nil || id == "" {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(buffer.TaskChange{TaskID: id})
	if err != nil {
		return err
	}
	return b.processor.Accept(ctx, buffer.Item{
		Entity:    buffer.EntityTask,
		Operation: buffer.OperationDelete,
		Data:      payload,
		Priority:  4,
	})
}

var _ usecase.OperationBuffer = (*BufferBridge)(nil)
