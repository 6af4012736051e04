package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskmind/backend/domain"
	"github.com/taskmind/backend/repository"
)

type reminderRepository struct {
	pool *pgxpool.Pool
}

// NewReminderRepository returns a Postgres-backed implementation of ReminderRepository.
func NewReminderRepository(pool *pgxpool.Pool) repository.ReminderRepository {
	return &reminderRepository{pool: pool}
}

func (r *reminderRepository) GetByID(ctx context.Context, id string) (*domain.Reminder, error) {
	const query = `
	SELECT id, task_id, owner_id, reminder_time, triggered, message, created_at
	FROM reminders
	WHERE id = $1
	`
	return scanReminder(r.pool.QueryRow(ctx, query, id))
}

func (r *reminderRepository) List(ctx context.Context, filter repository.ReminderFilter) ([]domain.Reminder, error) {
	const query = `
	SELECT id, task_id, owner_id, reminder_time, triggered, message, created_at
	FROM reminders
	WHERE ($1 = '' OR owner_id = $1)
	  AND ($2 = '' OR task_id = $2)
	ORDER BY reminder_time
	`
	rows, err := r.pool.Query(ctx, query, filter.OwnerID, filter.TaskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []domain.Reminder
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, *reminder)
	}
	return reminders, rows.Err()
}

func (r *reminderRepository) Save(ctx context.Context, reminder *domain.Reminder) error {
	if reminder == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO reminders (id, task_id, owner_id, reminder_time, triggered, message)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE
	SET reminder_time = EXCLUDED.reminder_time,
		triggered = EXCLUDED.triggered,
		message = EXCLUDED.message
	RETURNING created_at
	`
	return r.pool.QueryRow(ctx, query,
		reminder.ID,
		reminder.TaskID,
		reminder.OwnerID,
		reminder.ReminderTime,
		reminder.Triggered,
		reminder.Message,
	).Scan(&reminder.CreatedAt)
}

func (r *reminderRepository) Update(ctx context.Context, reminder *domain.Reminder) error {
	if reminder == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE reminders
	SET reminder_time = $2, triggered = $3, message = $4
	WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		reminder.ID,
		reminder.ReminderTime,
		reminder.Triggered,
		reminder.Message,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReminderNotFound
	}
	return nil
}

func (r *reminderRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM reminders WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReminderNotFound
	}
	return nil
}

func (r *reminderRepository) DeleteForTask(ctx context.Context, taskID string) error {
	const query = `DELETE FROM reminders WHERE task_id = $1`
	_, err := r.pool.Exec(ctx, query, taskID)
	return err
}

func scanReminder(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Reminder, error) {
	var reminder domain.Reminder
	if err := row.Scan(
		&reminder.ID,
		&reminder.TaskID,
		&reminder.OwnerID,
		&reminder.ReminderTime,
		&reminder.Triggered,
		&reminder.Message,
		&reminder.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReminderNotFound
		}
		return nil, err
	}
	return &reminder, nil
}
