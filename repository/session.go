package repository

import (
	"context"
	"time"

	"github.com/taskmind/backend/domain"
)

// SessionRepository stores login sessions with a bounded lifetime. Get on
// an expired or unknown id reports domain.ErrSessionNotFound.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
	Extend(ctx context.Context, id string, ttl time.Duration) error
}
