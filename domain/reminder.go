package domain

import "time"

// Reminder is anchored to a task and fires once its time has passed.
// Lifecycle is one-way: scheduled (Triggered=false) to fired (Triggered=true).
type Reminder struct {
	ID           string    `json:"id"`
	TaskID       string    `json:"task_id"`
	OwnerID      string    `json:"owner_id"`
	ReminderTime time.Time `json:"reminder_time"`
	Triggered    bool      `json:"triggered"`
	Message      string    `json:"message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsDue reports whether the reminder should fire at the given instant.
func (r *Reminder) IsDue(now time.Time) bool {
	if r == nil || r.Triggered || r.ReminderTime.IsZero() {
		return false
	}
	return !r.ReminderTime.After(now)
}
