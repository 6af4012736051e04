package repository

import (
	"context"

	"github.com/taskmind/backend/domain"
)

// AccountRepository stores credentials and profile data keyed by username.
type AccountRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	Exists(ctx context.Context, username string) (bool, error)
	List(ctx context.Context) ([]domain.Account, error)
	Save(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account) error
	Delete(ctx context.Context, username string) error
}
