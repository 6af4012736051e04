// Package reminder owns reminder scheduling and the due-reminder
// notification protocol. Due detection is pull-based: nothing fires until a
// caller invokes CheckReminders.
package reminder

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskmind/backend/domain"
	"github.com/taskmind/backend/repository"
	"github.com/taskmind/backend/usecase"
)

// Observer is notified synchronously for every reminder that comes due
// during a check cycle. Implementations resolving the anchor task must
// tolerate a task that no longer exists.
type Observer interface {
	OnReminderDue(ctx context.Context, reminder *domain.Reminder, taskID string) error
}

// Service is bound to one account. It owns reminder persistence and the
// observer registry.
type Service struct {
	owner     string
	reminders repository.ReminderRepository
	buffer    usecase.OperationBuffer
	observers []Observer
	logger    *zap.Logger
	now       func() time.Time
}

func New(owner string, reminders repository.ReminderRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		owner:     owner,
		reminders: reminders,
		buffer:    buffer,
		logger:    logger.With(zap.String("owner", owner)),
		now:       time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// AddObserver registers an observer. Registration order is preserved; an
// observer already registered is not added again.
func (s *Service) AddObserver(o Observer) {
	if o == nil {
		return
	}
	for _, existing := range s.observers {
		if existing == o {
			return
		}
	}
	s.observers = append(s.observers, o)
}

// RemoveObserver unregisters an observer. Removing one that was never
// registered is a no-op.
func (s *Service) RemoveObserver(o Observer) {
	for i, existing := range s.observers {
		if existing == o {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// Create persists a new untriggered reminder for the given task. A zero
// reminder time is rejected before anything is stored.
func (s *Service) Create(ctx context.Context, taskID string, at time.Time, message string) (*domain.Reminder, error) {
	if at.IsZero() {
		return nil, domain.ErrNoReminderTime
	}

	reminder := &domain.Reminder{
		ID:           uuid.NewString(),
		TaskID:       taskID,
		OwnerID:      s.owner,
		ReminderTime: at,
		Message:      message,
	}

	if err := s.reminders.Save(ctx, reminder); err != nil {
		if s.shouldBuffer(ctx, usecase.OperationCreate, reminder) {
			return reminder, nil
		}
		return nil, err
	}
	s.logger.Debug("reminder created", zap.String("reminder_id", reminder.ID), zap.Time("at", at))
	return reminder, nil
}

// CreateBeforeDeadline schedules a reminder minutesBefore minutes ahead of
// the task's deadline. A task without a deadline is rejected.
func (s *Service) CreateBeforeDeadline(ctx context.Context, task *domain.Task, minutesBefore int) (*domain.Reminder, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	deadline := task.CloneDeadline()
	if deadline == nil {
		return nil, domain.ErrNoDeadline
	}

	at := deadline.Add(-time.Duration(minutesBefore) * time.Minute)
	return s.Create(ctx, task.ID, at, "")
}

// All lists every reminder owned by the bound account.
func (s *Service) All(ctx context.Context) ([]domain.Reminder, error) {
	return s.reminders.List(ctx, repository.ReminderFilter{OwnerID: s.owner})
}

// ForTask lists the reminders anchored to one task.
func (s *Service) ForTask(ctx context.Context, taskID string) ([]domain.Reminder, error) {
	return s.reminders.List(ctx, repository.ReminderFilter{OwnerID: s.owner, TaskID: taskID})
}

// Due lists reminders that should fire now: untriggered with a reminder
// time at or before the current instant.
func (s *Service) Due(ctx context.Context) ([]domain.Reminder, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var due []domain.Reminder
	for _, r := range all {
		if r.IsDue(now) {
			due = append(due, r)
		}
	}
	return due, nil
}

// Delete removes a reminder. Deleting an absent id is a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.reminders.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrReminderNotFound) {
			return nil
		}
		return err
	}
	return nil
}

// CheckReminders runs one due-detection cycle. For every due reminder each
// registered observer is invoked synchronously in registration order, then
// the reminder is marked triggered and persisted. An observer error is
// logged and delivery continues with the remaining observers and reminders;
// a persistence failure after delivery is logged, not rolled back, so
// delivery is at-least-once. The fired reminders are returned.
func (s *Service) CheckReminders(ctx context.Context) ([]domain.Reminder, error) {
	due, err := s.Due(ctx)
	if err != nil {
		return nil, err
	}

	fired := make([]domain.Reminder, 0, len(due))
	for i := range due {
		r := &due[i]

		for _, o := range s.observers {
			if err := o.OnReminderDue(ctx, r, r.TaskID); err != nil {
				s.logger.Warn("reminder observer failed",
					zap.String("reminder_id", r.ID),
					zap.Error(err))
			}
		}

		r.Triggered = true
		if err := s.reminders.Update(ctx, r); err != nil {
			s.logger.Error("failed to mark reminder triggered",
				zap.String("reminder_id", r.ID),
				zap.Error(err))
			continue
		}
		fired = append(fired, *r)
	}
	return fired, nil
}

func (s *Service) shouldBuffer(ctx context.Context, operation string, reminder *domain.Reminder) bool {
	if s.buffer == nil {
		return false
	}
	if err := s.buffer.BufferReminder(ctx, operation, reminder); err != nil {
		s.logger.Error("failed to buffer reminder operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	s.logger.Warn("reminder operation buffered", zap.String("operation", operation))
	return true
}
