package usecase

import (
	"context"

	"github.com/taskmind/backend/domain"
)

// OperationBuffer abstracts the offline write buffer so services stay
// storage-agnostic.
type OperationBuffer interface {
	BufferTask(ctx context.Context, operation string, task *domain.Task) error
	BufferReminder(ctx context.Context, operation string, reminder *domain.Reminder) error
}

const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)
