package repository

import (
	"context"

	"github.com/taskmind/backend/domain"
)

type ReminderFilter struct {
	OwnerID string
	TaskID  string
}

type ReminderRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Reminder, error)
	List(ctx context.Context, filter ReminderFilter) ([]domain.Reminder, error)
	Save(ctx context.Context, reminder *domain.Reminder) error
	Update(ctx context.Context, reminder *domain.Reminder) error
	Delete(ctx context.Context, id string) error
	// DeleteForTask removes every reminder anchored to the given task.
	DeleteForTask(ctx context.Context, taskID string) error
}
