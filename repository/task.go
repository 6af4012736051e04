package repository

import (
	"context"
	"time"

	"github.com/taskmind/backend/domain"
)

type TaskFilter struct {
	OwnerID    string
	Completed  *bool
	CategoryID string
	Priority   domain.Priority
	DueAfter   *time.Time
	DueBefore  *time.Time
}

// TaskRepository is the persistence collaborator for tasks. Save is
// insert-or-replace keyed by id; GetByID reports a missing row with
// domain.ErrTaskNotFound.
type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Save(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
}
