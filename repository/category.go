package repository

import (
	"context"

	"github.com/taskmind/backend/domain"
)

type CategoryRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Save(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id string) error
}
