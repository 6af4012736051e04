package transport

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	SessionID string `json:"session_id"`
	TTL       int    `json:"ttl_seconds"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// TaskRequest carries task fields over the wire. Deadline uses the
// dd/MM/yyyy HH:mm display form; empty means no deadline. Updates are
// sparse: Description and Completed are pointers so an omitted field keeps
// its stored value, and an empty Name, Priority or Deadline is ignored.
type TaskRequest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CategoryID  string  `json:"category_id"`
	Priority    string  `json:"priority"`
	Deadline    string  `json:"deadline"`
	Completed   *bool   `json:"completed"`
}

type ReminderRequest struct {
	TaskID       string `json:"task_id"`
	ReminderTime string `json:"reminder_time"`
	Message      string `json:"message"`
}

type BeforeDeadlineRequest struct {
	TaskID        string `json:"task_id"`
	MinutesBefore int    `json:"minutes_before"`
}

type ExtendDeadlineRequest struct {
	Days int `json:"days"`
}

type CategoryRequest struct {
	Name string `json:"name"`
}

// SettingsRequest is a sparse update of notification preferences: nil
// fields keep their stored values.
type SettingsRequest struct {
	EmailEnabled           *bool `json:"email_enabled"`
	AppEnabled             *bool `json:"app_enabled"`
	DefaultReminderMinutes *int  `json:"default_reminder_minutes"`
}
