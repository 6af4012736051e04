package services

import (
	"context"
	"encoding/json"

	"github.com/taskmind/backend/domain"
	"github.com/taskmind/backend/internal/infrastructure/buffer"
	"github.com/taskmind/backend/usecase"
)

// BufferBridge adapts the buffer processor to the usecase.OperationBuffer port.
type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferTask(ctx context.Context, operation string, task *domain.Task) error {
	if b.processor == nil || task == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}
	item := buffer.Item{
		ID:        task.ID,
		OwnerID:   task.OwnerID,
		Entity:    buffer.EntityTask,
		Operation: operation,
		Data:      payload,
		Priority:  4,
	}
	return b.processor.BufferOperation(ctx, item)
}

func (b *BufferBridge) BufferReminder(ctx context.Context, operation string, reminder *domain.Reminder) error {
	if b.processor == nil || reminder == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(reminder)
	if err != nil {
		return err
	}
	item := buffer.Item{
		ID:        reminder.ID,
		OwnerID:   reminder.OwnerID,
		Entity:    buffer.EntityReminder,
		Operation: operation,
		Data:      payload,
		Priority:  3,
	}
	return b.processor.BufferOperation(ctx, item)
}

var _ usecase.OperationBuffer = (*BufferBridge)(nil)
