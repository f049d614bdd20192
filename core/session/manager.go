package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/pagevisits/core/logger"
)

// Manager handles session lifecycle including creation, retrieval, persistence
// and expiration.
type Manager[Data any] struct {
	store Store[Data]
	cfg   Config
}

// NewManager creates a session manager backed by store.
func NewManager[Data any](store Store[Data], opts ...Option) *Manager[Data] {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Manager[Data]{store: store, cfg: cfg}
}

// New creates a fresh session. It is not persisted until Store is called.
func (m *Manager[Data]) New(_ context.Context, params NewSessionParams) (Session[Data], error) {
	return New[Data](params, m.cfg.TTL)
}

// GetByID retrieves a session by ID and validates expiration.
func (m *Manager[Data]) GetByID(ctx context.Context, id uuid.UUID) (Session[Data], error) {
	sess, err := m.store.GetByID(ctx, id)
	if err != nil {
		return Session[Data]{}, err
	}
	if sess.IsExpired() {
		return Session[Data]{}, ErrExpired
	}
	return *sess, nil
}

// GetByToken retrieves a session by token and validates expiration.
func (m *Manager[Data]) GetByToken(ctx context.Context, token string) (Session[Data], error) {
	sess, err := m.store.GetByToken(ctx, token)
	if err != nil {
		return Session[Data]{}, err
	}
	if sess.IsExpired() {
		return Session[Data]{}, ErrExpired
	}
	return *sess, nil
}

// Store persists sess according to its state and returns the stored value.
// Invalidated sessions are removed from the store and ErrInvalidated is returned
// so the transport can clear the client token. Unmodified sessions are only
// written when their expiry is extended.
func (m *Manager[Data]) Store(ctx context.Context, sess Session[Data]) (Session[Data], error) {
	if sess.IsDeleted() {
		if err := m.store.Delete(ctx, sess.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return sess, errors.Join(ErrDeleteSession, err)
		}
		return sess, ErrInvalidated
	}

	sess.Touch(m.cfg.TTL, m.cfg.TouchInterval)

	if sess.IsModified() {
		if err := m.store.Save(ctx, &sess); err != nil {
			return sess, errors.Join(ErrSaveSession, err)
		}
		sess.isModified = false
	}

	return sess, nil
}

// Delete removes the session from the store.
func (m *Manager[Data]) Delete(ctx context.Context, id uuid.UUID) error {
	if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return errors.Join(ErrDeleteSession, err)
	}
	return nil
}

// CleanupExpired removes all expired sessions from the store.
func (m *Manager[Data]) CleanupExpired(ctx context.Context) (int64, error) {
	return m.store.DeleteExpired(ctx)
}

// RunCleanup returns a function that calls CleanupExpired every interval until
// ctx is canceled. It fits errgroup.Group.Go. A non-positive interval uses the
// configured CleanupInterval.
func (m *Manager[Data]) RunCleanup(ctx context.Context, interval time.Duration, log *slog.Logger) func() error {
	if interval <= 0 {
		interval = m.cfg.CleanupInterval
	}
	if log == nil {
		log = logger.Discard()
	}
	return func() error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				n, err := m.CleanupExpired(ctx)
				if err != nil {
					log.ErrorContext(ctx, "session cleanup failed", logger.Error(err))
					continue
				}
				if n > 0 {
					log.DebugContext(ctx, "expired sessions removed", slog.Int64("count", n))
				}
			}
		}
	}
}

// TTL returns the session time-to-live duration.
func (m *Manager[Data]) TTL() time.Duration {
	return m.cfg.TTL
}
