package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskmind/backend/domain"
	"github.com/taskmind/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

const taskColumns = `
	t.id, t.owner_id, t.name, t.description, t.priority, t.deadline, t.completed,
	t.created_at, t.updated_at, c.id, c.name
`

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `
	SELECT ` + taskColumns + `
	FROM tasks t
	JOIN categories c ON c.id = t.category_id
	WHERE t.id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanTask(row)
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	query := `
	SELECT ` + taskColumns + `
	FROM tasks t
	JOIN categories c ON c.id = t.category_id
	WHERE ($1 = '' OR t.owner_id = $1)
	  AND ($2::boolean IS NULL OR t.completed = $2)
	  AND ($3 = '' OR t.category_id = $3)
	  AND ($4 = '' OR t.priority = $4)
	  AND ($5::timestamptz IS NULL OR t.deadline >= $5)
	  AND ($6::timestamptz IS NULL OR t.deadline <= $6)
	ORDER BY t.created_at
	`
	rows, err := r.pool.Query(ctx, query,
		filter.OwnerID,
		filter.Completed,
		filter.CategoryID,
		string(filter.Priority),
		filter.DueAfter,
		filter.DueBefore,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Save(ctx context.Context, task *domain.Task) error {
	if task == nil || task.Category == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO tasks (id, owner_id, name, description, category_id, priority, deadline, completed)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name,
		description = EXCLUDED.description,
		category_id = EXCLUDED.category_id,
		priority = EXCLUDED.priority,
		deadline = EXCLUDED.deadline,
		completed = EXCLUDED.completed,
		updated_at = NOW()
	RETURNING created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		task.ID,
		task.OwnerID,
		task.Name,
		task.Description,
		task.Category.ID,
		string(task.Priority),
		nullTime(task.Deadline),
		task.Completed,
	).Scan(&task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil || task.Category == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE tasks
	SET name = $2,
		description = $3,
		category_id = $4,
		priority = $5,
		deadline = $6,
		completed = $7,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.Name,
		task.Description,
		task.Category.ID,
		string(task.Priority),
		nullTime(task.Deadline),
		task.Completed,
	).Scan(&task.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var (
		task     domain.Task
		category domain.Category
		deadline *time.Time
		priority string
	)

	if err := row.Scan(
		&task.ID,
		&task.OwnerID,
		&task.Name,
		&task.Description,
		&priority,
		&deadline,
		&task.Completed,
		&task.CreatedAt,
		&task.UpdatedAt,
		&category.ID,
		&category.Name,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.Priority = domain.Priority(priority)
	task.Deadline = deadline
	task.Category = &category
	return &task, nil
}
