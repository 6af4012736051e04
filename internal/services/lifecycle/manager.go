// Package lifecycle sequences graceful shutdown: components register a stop
// hook as they come up and are stopped in reverse order on the way down.
package lifecycle

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

type ShutdownFunc func(ctx context.Context) error

type hook struct {
	name string
	fn   ShutdownFunc
}

type Manager struct {
	timeout time.Duration
	logger  *zap.Logger

	mu    sync.Mutex
	once  sync.Once
	hooks []hook
}

func New(timeout time.Duration, logger *zap.Logger) *Manager {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{timeout: timeout, logger: logger}
}

// Register adds a stop hook. Registration order is startup order; shutdown
// runs the hooks in reverse.
func (m *Manager) Register(name string, fn ShutdownFunc) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, hook{name: name, fn: fn})
}

// Shutdown stops every registered component within the configured timeout.
// A failing hook is logged and the remaining hooks still run; the joined
// errors are returned. Repeat calls are no-ops.
func (m *Manager) Shutdown(ctx context.Context) error {
	var result error
	m.once.Do(func() {
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, cancel := context.WithTimeout(ctx, m.timeout)
		defer cancel()

		m.mu.Lock()
		defer m.mu.Unlock()

		for i := len(m.hooks) - 1; i >= 0; i-- {
			h := m.hooks[i]
			if err := h.fn(ctx); err != nil {
				m.logger.Error("shutdown hook failed", zap.String("component", h.name), zap.Error(err))
				result = errors.Join(result, err)
				continue
			}
			m.logger.Info("component stopped", zap.String("component", h.name))
		}
	})
	return result
}

// Listen invokes cancel when the process receives SIGTERM or SIGINT.
func (m *Manager) Listen(cancel context.CancelFunc) {
	if cancel == nil {
		return
	}
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		defer signal.Stop(sigCh)
		sig := <-sigCh
		m.logger.Info("shutdown signal received", zap.String("signal", sig.String()))
		cancel()
	}()
}
