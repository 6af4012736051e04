package repository

import (
	"context"

	"github.com/taskmind/backend/domain"
)

// SettingsRepository persists per-account notification preferences.
type SettingsRepository interface {
	Get(ctx context.Context, owner string) (*domain.NotificationSettings, error)
	Save(ctx context.Context, settings *domain.NotificationSettings) error
}
