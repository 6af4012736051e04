package services

import (
	"go.uber.org/zap"

	"github.com/taskmind/backend/repository"
	"github.com/taskmind/backend/usecase"
	"github.com/taskmind/backend/usecase/deadline"
	"github.com/taskmind/backend/usecase/reminder"
	"github.com/taskmind/backend/usecase/task"
)

// Factory builds the account-bound service set for an authenticated session.
// There is no shared instance: each caller gets services scoped to exactly
// one username.
type Factory struct {
	taskRepo     repository.TaskRepository
	reminderRepo repository.ReminderRepository
	buffer       usecase.OperationBuffer
	logger       *zap.Logger
}

func NewFactory(
	taskRepo repository.TaskRepository,
	reminderRepo repository.ReminderRepository,
	buffer usecase.OperationBuffer,
	logger *zap.Logger,
) *Factory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Factory{
		taskRepo:     taskRepo,
		reminderRepo: reminderRepo,
		buffer:       buffer,
		logger:       logger,
	}
}

func (f *Factory) TasksFor(username string) *task.Service {
	return task.New(username, f.taskRepo, f.reminderRepo, f.buffer, f.logger)
}

func (f *Factory) DeadlinesFor(username string) *deadline.Service {
	return deadline.New(f.TasksFor(username), f.logger)
}

// RemindersFor builds a reminder service with the logging notifier already
// registered as an observer.
func (f *Factory) RemindersFor(username string) *reminder.Service {
	svc := reminder.New(username, f.reminderRepo, f.buffer, f.logger)
	svc.AddObserver(NewNotifier(f.TasksFor(username), f.logger))
	return svc
}
