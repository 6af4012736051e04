package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskmind/backend/domain"
	"github.com/taskmind/backend/repository"
)

type settingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository returns a Postgres-backed implementation of SettingsRepository.
func NewSettingsRepository(pool *pgxpool.Pool) repository.SettingsRepository {
	return &settingsRepository{pool: pool}
}

func (r *settingsRepository) Get(ctx context.Context, owner string) (*domain.NotificationSettings, error) {
	const query = `
	SELECT owner, email_enabled, app_enabled, default_reminder_minutes
	FROM notification_settings
	WHERE owner = $1
	`
	var settings domain.NotificationSettings
	if err := r.pool.QueryRow(ctx, query, owner).Scan(
		&settings.Owner,
		&settings.EmailEnabled,
		&settings.AppEnabled,
		&settings.DefaultReminderMinutes,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *domain.NotificationSettings) error {
	if settings == nil || settings.Owner == "" {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO notification_settings (owner, email_enabled, app_enabled, default_reminder_minutes)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (owner) DO UPDATE SET
		email_enabled = EXCLUDED.email_enabled,
		app_enabled = EXCLUDED.app_enabled,
		default_reminder_minutes = EXCLUDED.default_reminder_minutes
	`
	_, err := r.pool.Exec(ctx, query,
		settings.Owner,
		settings.EmailEnabled,
		settings.AppEnabled,
		settings.DefaultReminderMinutes,
	)
	return err
}
