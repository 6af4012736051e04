// Package category manages the shared category reference data. The
// repository is the single authoritative store; there is no in-memory copy.
package category

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskmind/backend/domain"
	"github.com/taskmind/backend/repository"
)

type Service struct {
	categories repository.CategoryRepository
	logger     *zap.Logger
}

func New(categories repository.CategoryRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		categories: categories,
		logger:     logger,
	}
}

// Create persists a new category under a fresh id.
func (s *Service) Create(ctx context.Context, name string) (*domain.Category, error) {
	if name == "" {
		return nil, domain.ErrEmptyName
	}
	category := &domain.Category{ID: uuid.NewString(), Name: name}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Get returns the category with the given id, or nil when absent.
func (s *Service) Get(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return category, nil
}

// List returns all categories.
func (s *Service) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

// Rename updates an existing category's name.
func (s *Service) Rename(ctx context.Context, id, name string) error {
	if name == "" {
		return domain.ErrEmptyName
	}
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	category.Name = name
	return s.categories.Save(ctx, category)
}

// Delete removes a category. Deleting an absent id is a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return nil
		}
		return err
	}
	return nil
}
