package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskmind/backend/domain"
	"github.com/taskmind/backend/pkg/dates"
	"github.com/taskmind/backend/usecase/reminder"
)

// TaskLookup resolves a task by id; missing tasks come back as nil.
type TaskLookup interface {
	Get(ctx context.Context, id string) (*domain.Task, error)
}

// Notifier is the reminder observer registered during a due-check cycle.
// It resolves the anchor task for context and logs the notification; a
// reminder whose task has since been deleted is still reported.
type Notifier struct {
	tasks  TaskLookup
	logger *zap.Logger
}

func NewNotifier(tasks TaskLookup, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{tasks: tasks, logger: logger}
}

func (n *Notifier) OnReminderDue(ctx context.Context, r *domain.Reminder, taskID string) error {
	fields := []zap.Field{
		zap.String("reminder_id", r.ID),
		zap.String("task_id", taskID),
		zap.String("reminder_time", dates.FormatDisplay(&r.ReminderTime)),
	}

	task, err := n.tasks.Get(ctx, taskID)
	switch {
	case err != nil:
		fields = append(fields, zap.NamedError("task_lookup", err))
	case task == nil:
		fields = append(fields, zap.Bool("task_missing", true))
	default:
		fields = append(fields, zap.String("task_name", task.Name))
	}

	n.logger.Info("reminder due", fields...)
	return nil
}

var _ reminder.Observer = (*Notifier)(nil)
