// Package task owns the task lifecycle for a single account: creation with
// invariant checks, lookup, persistence, and the sorted and filtered views
// the rest of the service layer builds on.
package task

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskmind/backend/domain"
	"github.com/taskmind/backend/repository"
	"github.com/taskmind/backend/usecase"
)

// Service is bound to one account and only touches that account's tasks.
type Service struct {
	owner     string
	tasks     repository.TaskRepository
	reminders repository.ReminderRepository
	buffer    usecase.OperationBuffer
	logger    *zap.Logger
}

// New constructs an account-bound task service. The reminder repository is
// used only for the delete cascade and may be nil in contexts without
// reminders; buffer may be nil when offline buffering is not wired.
func New(owner string, tasks repository.TaskRepository, reminders repository.ReminderRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		owner:     owner,
		tasks:     tasks,
		reminders: reminders,
		buffer:    buffer,
		logger:    logger.With(zap.String("owner", owner)),
	}
}

// Owner returns the username this service operates for.
func (s *Service) Owner() string {
	return s.owner
}

// Create validates the input, assigns a fresh id and defaults, and persists
// the new task. Nothing is persisted when validation fails.
func (s *Service) Create(ctx context.Context, name, description string, category *domain.Category) (*domain.Task, error) {
	task := &domain.Task{
		ID:          uuid.NewString(),
		OwnerID:     s.owner,
		Name:        name,
		Description: description,
		Category:    category,
		Priority:    domain.PriorityMedium,
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := s.tasks.Save(ctx, task); err != nil {
		if s.shouldBuffer(ctx, usecase.OperationCreate, task) {
			return task, nil
		}
		return nil, err
	}
	s.logger.Debug("task created", zap.String("task_id", task.ID))
	return task, nil
}

// Get returns the task with the given id, or nil when it does not exist.
func (s *Service) Get(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if task.OwnerID != s.owner {
		return nil, nil
	}
	task.Deadline = domain.CloneTime(task.Deadline)
	return task, nil
}

// All lists every task owned by the bound account.
func (s *Service) All(ctx context.Context) ([]domain.Task, error) {
	return s.tasks.List(ctx, repository.TaskFilter{OwnerID: s.owner})
}

// Update overwrites the stored record with the task's current field values.
// Updating a task that was never created is an error.
func (s *Service) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}
	task.OwnerID = s.owner
	task.Deadline = domain.CloneTime(task.Deadline)

	if err := s.tasks.Update(ctx, task); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return err
		}
		if s.shouldBuffer(ctx, usecase.OperationUpdate, task) {
			return nil
		}
		return err
	}
	return nil
}

// Delete removes the task and every reminder anchored to it. Deleting an
// absent id is a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil
		}
		if s.shouldBuffer(ctx, usecase.OperationDelete, &domain.Task{ID: id, OwnerID: s.owner}) {
			return nil
		}
		return err
	}

	if s.reminders != nil {
		if err := s.reminders.DeleteForTask(ctx, id); err != nil {
			s.logger.Warn("reminder cascade failed", zap.String("task_id", id), zap.Error(err))
		}
	}
	return nil
}

// MarkCompleted sets completed=true and persists. Unknown ids are ignored.
func (s *Service) MarkCompleted(ctx context.Context, id string) error {
	task, err := s.Get(ctx, id)
	if err != nil || task == nil {
		return err
	}
	task.Completed = true
	return s.Update(ctx, task)
}

// SortedByDeadline returns tasks ascending by deadline. Tasks without a
// deadline sort after every task that has one; ties keep their stored order.
func (s *Service) SortedByDeadline(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		di, dj := tasks[i].Deadline, tasks[j].Deadline
		switch {
		case di == nil:
			return false
		case dj == nil:
			return true
		default:
			return di.Before(*dj)
		}
	})
	return tasks, nil
}

// SortedByPriority returns tasks ordered high, medium, low, keeping the
// stored order within each group.
func (s *Service) SortedByPriority(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Priority.Weight() > tasks[j].Priority.Weight()
	})
	return tasks, nil
}

// InDateRange lists tasks whose deadline falls within [start, end]. Tasks
// without a deadline are excluded.
func (s *Service) InDateRange(ctx context.Context, start, end time.Time) ([]domain.Task, error) {
	tasks, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.Task
	for _, t := range tasks {
		if t.Deadline == nil {
			continue
		}
		if t.Deadline.Before(start) || t.Deadline.After(end) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// ByCategory lists tasks assigned to the given category.
func (s *Service) ByCategory(ctx context.Context, category *domain.Category) ([]domain.Task, error) {
	if category == nil {
		return nil, domain.ErrNilCategory
	}
	return s.tasks.List(ctx, repository.TaskFilter{OwnerID: s.owner, CategoryID: category.ID})
}

// ByPriority lists tasks carrying the given priority.
func (s *Service) ByPriority(ctx context.Context, priority domain.Priority) ([]domain.Task, error) {
	if !priority.Valid() {
		return nil, domain.ErrInvalidPriority
	}
	return s.tasks.List(ctx, repository.TaskFilter{OwnerID: s.owner, Priority: priority})
}

func (s *Service) shouldBuffer(ctx context.Context, operation string, task *domain.Task) bool {
	if s.buffer == nil {
		return false
	}
	if err := s.buffer.BufferTask(ctx, operation, task); err != nil {
		s.logger.Error("failed to buffer task operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	s.logger.Warn("task operation buffered", zap.String("operation", operation))
	return true
}
