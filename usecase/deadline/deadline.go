// Package deadline is a stateless read/derive layer over a task service:
// it classifies deadlines relative to the current calendar day and answers
// the overdue / due-today / upcoming queries.
package deadline

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/taskmind/backend/domain"
	"github.com/taskmind/backend/usecase/task"
)

// Status classifies a task's deadline relative to the current calendar day.
type Status string

const (
	StatusNoDeadline Status = "no deadline"
	StatusOverdue    Status = "overdue"
	StatusToday      Status = "today"
	StatusUpcoming   Status = "upcoming"
)

type Service struct {
	tasks  *task.Service
	logger *zap.Logger
	now    func() time.Time
}

func New(tasks *task.Service, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		tasks:  tasks,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Upcoming lists open tasks whose deadline is strictly in the future and no
// later than now plus withinDays days, ascending by deadline.
func (s *Service) Upcoming(ctx context.Context, withinDays int) ([]domain.Task, error) {
	all, err := s.tasks.All(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	horizon := now.AddDate(0, 0, withinDays)

	var out []domain.Task
	for _, t := range all {
		if t.Completed || t.Deadline == nil {
			continue
		}
		if t.Deadline.After(now) && !t.Deadline.After(horizon) {
			out = append(out, t)
		}
	}
	sortByDeadline(out)
	return out, nil
}

// Overdue lists open tasks whose deadline is strictly before now.
func (s *Service) Overdue(ctx context.Context) ([]domain.Task, error) {
	all, err := s.tasks.All(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var out []domain.Task
	for _, t := range all {
		if t.IsOverdue(now) {
			out = append(out, t)
		}
	}
	return out, nil
}

// DueToday lists tasks whose deadline falls inside the current calendar day,
// regardless of completion state, ascending by deadline.
func (s *Service) DueToday(ctx context.Context) ([]domain.Task, error) {
	all, err := s.tasks.All(ctx)
	if err != nil {
		return nil, err
	}

	today := s.now()
	var out []domain.Task
	for _, t := range all {
		if t.Deadline == nil {
			continue
		}
		if sameDay(*t.Deadline, today) {
			out = append(out, t)
		}
	}
	sortByDeadline(out)
	return out, nil
}

// Extend advances the task's deadline by days (negative pulls it earlier)
// and persists. It reports false when the task is absent or has no deadline.
func (s *Service) Extend(ctx context.Context, taskID string, days int) (bool, error) {
	t, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		return false, err
	}
	if t == nil || t.Deadline == nil {
		return false, nil
	}

	moved := t.Deadline.AddDate(0, 0, days)
	t.SetDeadline(&moved)

	if err := s.tasks.Update(ctx, t); err != nil {
		return false, err
	}
	s.logger.Debug("deadline extended", zap.String("task_id", taskID), zap.Int("days", days))
	return true, nil
}

// Status classifies the task's deadline by calendar day. It is total over
// possibly-stale ids: an unknown task reports StatusNoDeadline rather than
// an error.
func (s *Service) Status(ctx context.Context, taskID string) (Status, error) {
	t, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		return StatusNoDeadline, err
	}
	if t == nil || t.Deadline == nil {
		return StatusNoDeadline, nil
	}

	now := s.now()
	deadlineDay := startOfDay(*t.Deadline)
	today := startOfDay(now)

	switch {
	case deadlineDay.Before(today):
		return StatusOverdue, nil
	case deadlineDay.Equal(today):
		return StatusToday, nil
	default:
		return StatusUpcoming, nil
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sortByDeadline(tasks []domain.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Deadline.Before(*tasks[j].Deadline)
	})
}
