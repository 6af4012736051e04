package domain

import "time"

// Task represents a user-owned activity item.
type Task struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Category    *Category  `json:"category"`
	Priority    Priority   `json:"priority"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Validate checks the invariants every stored task must hold.
func (t *Task) Validate() error {
	if t == nil {
		return ErrInvalidPayload
	}
	if t.Name == "" {
		return ErrEmptyName
	}
	if t.Category == nil {
		return ErrNilCategory
	}
	if !t.Priority.Valid() {
		return ErrInvalidPriority
	}
	return nil
}

// IsOverdue reports whether the deadline has passed. Completed tasks and
// tasks without a deadline are never overdue.
func (t *Task) IsOverdue(now time.Time) bool {
	if t == nil || t.Deadline == nil || t.Completed {
		return false
	}
	return t.Deadline.Before(now)
}

// DaysUntilDeadline returns whole days remaining, negative when the deadline
// has passed, and -1 when no deadline is set.
func (t *Task) DaysUntilDeadline(now time.Time) int {
	if t == nil || t.Deadline == nil {
		return -1
	}
	return int(t.Deadline.Sub(now).Hours() / 24)
}

// SetDeadline stores a copy of the given instant so later mutation of the
// caller's value cannot reach the task.
func (t *Task) SetDeadline(at *time.Time) {
	t.Deadline = CloneTime(at)
}

// CloneDeadline returns a copy of the deadline safe for the caller to mutate.
func (t *Task) CloneDeadline() *time.Time {
	if t == nil {
		return nil
	}
	return CloneTime(t.Deadline)
}

// CloneTime copies an optional instant.
func CloneTime(at *time.Time) *time.Time {
	if at == nil {
		return nil
	}
	c := *at
	return &c
}
