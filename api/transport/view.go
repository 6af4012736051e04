package transport

import (
	"github.com/taskmind/backend/domain"
	"github.com/taskmind/backend/pkg/dates"
)

// TaskView is the wire form of a task. Deadline is rendered in the
// dd/MM/yyyy HH:mm display layout.
type TaskView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CategoryID  string `json:"category_id"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	Deadline    string `json:"deadline"`
	Completed   bool   `json:"completed"`
}

func NewTaskView(t domain.Task) TaskView {
	view := TaskView{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Priority:    t.Priority.Label(),
		Deadline:    dates.FormatDisplay(t.Deadline),
		Completed:   t.Completed,
	}
	if t.Category != nil {
		view.CategoryID = t.Category.ID
		view.Category = t.Category.Name
	}
	return view
}

func NewTaskViews(tasks []domain.Task) []TaskView {
	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, NewTaskView(t))
	}
	return views
}

type ReminderView struct {
	ID           string `json:"id"`
	TaskID       string `json:"task_id"`
	ReminderTime string `json:"reminder_time"`
	Triggered    bool   `json:"triggered"`
	Message      string `json:"message,omitempty"`
}

func NewReminderView(r domain.Reminder) ReminderView {
	at := r.ReminderTime
	return ReminderView{
		ID:           r.ID,
		TaskID:       r.TaskID,
		ReminderTime: dates.FormatDisplay(&at),
		Triggered:    r.Triggered,
		Message:      r.Message,
	}
}

type SettingsView struct {
	EmailEnabled           bool `json:"email_enabled"`
	AppEnabled             bool `json:"app_enabled"`
	DefaultReminderMinutes int  `json:"default_reminder_minutes"`
}

func NewSettingsView(s domain.NotificationSettings) SettingsView {
	return SettingsView{
		EmailEnabled:           s.EmailEnabled,
		AppEnabled:             s.AppEnabled,
		DefaultReminderMinutes: s.DefaultReminderMinutes,
	}
}

func NewReminderViews(reminders []domain.Reminder) []ReminderView {
	views := make([]ReminderView, 0, len(reminders))
	for _, r := range reminders {
		views = append(views, NewReminderView(r))
	}
	return views
}
