package domain

// NotificationSettings holds one account's notification preferences. The
// reminder offset is the lead time, in minutes before a deadline, used when
// a reminder is scheduled without an explicit one.
type NotificationSettings struct {
	Owner                  string `json:"owner"`
	EmailEnabled           bool   `json:"email_enabled"`
	AppEnabled             bool   `json:"app_enabled"`
	DefaultReminderMinutes int    `json:"default_reminder_minutes"`
}

// DefaultNotificationSettings returns the preferences every account starts
// with: both channels enabled, reminders 30 minutes ahead.
func DefaultNotificationSettings(owner string) *NotificationSettings {
	return &NotificationSettings{
		Owner:                  owner,
		EmailEnabled:           true,
		AppEnabled:             true,
		DefaultReminderMinutes: 30,
	}
}

func (s *NotificationSettings) Validate() error {
	if s == nil || s.Owner == "" {
		return ErrInvalidPayload
	}
	if s.DefaultReminderMinutes <= 0 {
		return ErrInvalidReminderOffset
	}
	return nil
}
