package category

import (
	"context"
	"errors"
	"testing"

	"github.com/taskmind/backend/domain"
)

type memCategoryRepo struct {
	categories []*domain.Category
}

func (m *memCategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	for _, c := range m.categories {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *memCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (m *memCategoryRepo) Save(ctx context.Context, c *domain.Category) error {
	for i, stored := range m.categories {
		if stored.ID == c.ID {
			cp := *c
			m.categories[i] = &cp
			return nil
		}
	}
	cp := *c
	m.categories = append(m.categories, &cp)
	return nil
}

func (m *memCategoryRepo) Delete(ctx context.Context, id string) error {
	for i, stored := range m.categories {
		if stored.ID == id {
			m.categories = append(m.categories[:i], m.categories[i+1:]...)
			return nil
		}
	}
	return domain.ErrCategoryNotFound
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := &memCategoryRepo{}
	svc := New(repo, nil)

	created, err := svc.Create(ctx, "Work")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected a generated id")
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.Name != "Work" {
		t.Fatalf("got %+v", got)
	}

	ghost, err := svc.Get(ctx, "no-such-id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ghost != nil {
		t.Fatal("absent category must yield nil")
	}

	if _, err := svc.Create(ctx, ""); !errors.Is(err, domain.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestRename(t *testing.T) {
	ctx := context.Background()
	repo := &memCategoryRepo{}
	svc := New(repo, nil)

	created, _ := svc.Create(ctx, "Wrok")
	if err := svc.Rename(ctx, created.ID, "Work"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := svc.Get(ctx, created.ID)
	if got.Name != "Work" {
		t.Fatalf("got %q", got.Name)
	}

	if err := svc.Rename(ctx, "ghost", "X"); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
	if err := svc.Rename(ctx, created.ID, ""); !errors.Is(err, domain.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := &memCategoryRepo{}
	svc := New(repo, nil)

	created, _ := svc.Create(ctx, "Work")
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("repeat delete must be a no-op, got %v", err)
	}
}
