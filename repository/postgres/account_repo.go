package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskmind/backend/domain"
	"github.com/taskmind/backend/repository"
)

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation of AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) repository.AccountRepository {
	return &accountRepository{pool: pool}
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	const query = `
	SELECT username, password_hash, email, created_at
	FROM accounts
	WHERE username = $1
	`
	var account domain.Account
	if err := r.pool.QueryRow(ctx, query, username).Scan(
		&account.Username,
		&account.PasswordHash,
		&account.Email,
		&account.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) Exists(ctx context.Context, username string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM accounts WHERE username = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, username).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *accountRepository) List(ctx context.Context) ([]domain.Account, error) {
	const query = `SELECT username, password_hash, email, created_at FROM accounts ORDER BY username`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(&account.Username, &account.PasswordHash, &account.Email, &account.CreatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (r *accountRepository) Save(ctx context.Context, account *domain.Account) error {
	if account == nil || account.Username == "" {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO accounts (username, password_hash, email)
	VALUES ($1, $2, $3)
	RETURNING created_at
	`
	return r.pool.QueryRow(ctx, query,
		account.Username,
		account.PasswordHash,
		account.Email,
	).Scan(&account.CreatedAt)
}

func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	if account == nil || account.Username == "" {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE accounts
	SET password_hash = $2, email = $3
	WHERE username = $1
	`
	tag, err := r.pool.Exec(ctx, query, account.Username, account.PasswordHash, account.Email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, username string) error {
	const query = `DELETE FROM accounts WHERE username = $1`
	_, err := r.pool.Exec(ctx, query, username)
	return err
}
