package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/pagevisits/core/session"
)

const (
	sessionKeyPrefix = "session:"
	tokenKeyPrefix   = "session:token:"
)

// sessionRecord is the JSON document stored under session:<id>.
type sessionRecord[Data any] struct {
	ID          uuid.UUID `json:"id"`
	Token       string    `json:"token"`
	Fingerprint string    `json:"fingerprint,omitempty"`
	IP          string    `json:"ip"`
	UserAgent   string    `json:"user_agent,omitempty"`
	Data        Data      `json:"data"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SessionStore implements session.Store on Redis. Each session is a JSON
// document under session:<id> and a session:token:<token> key points back to
// the id. Both keys expire with the session, so Redis evicts stale sessions
// on its own.
type SessionStore[Data any] struct {
	client    redis.UniversalClient
	scanBatch int64
}

// SessionStoreOption configures a SessionStore.
type SessionStoreOption func(*sessionStoreOptions)

type sessionStoreOptions struct {
	scanBatch int64
}

// WithScanBatchSize sets the COUNT hint used when scanning token keys.
func WithScanBatchSize(n int) SessionStoreOption {
	return func(o *sessionStoreOptions) {
		if n > 0 {
			o.scanBatch = int64(n)
		}
	}
}

// NewSessionStore creates a Redis-backed session store.
func NewSessionStore[Data any](client redis.UniversalClient, opts ...SessionStoreOption) *SessionStore[Data] {
	o := sessionStoreOptions{scanBatch: 1000}
	for _, opt := range opts {
		opt(&o)
	}
	return &SessionStore[Data]{client: client, scanBatch: o.scanBatch}
}

func (s *SessionStore[Data]) GetByID(ctx context.Context, id uuid.UUID) (*session.Session[Data], error) {
	rec, err := s.load(ctx, id.String())
	if err != nil {
		return nil, err
	}
	return rec.toSession(), nil
}

func (s *SessionStore[Data]) GetByToken(ctx context.Context, token string) (*session.Session[Data], error) {
	id, err := s.client.Get(ctx, tokenKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrNotFound
		}
		return nil, err
	}

	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Token != token {
		return nil, session.ErrNotFound
	}
	return rec.toSession(), nil
}

func (s *SessionStore[Data]) Save(ctx context.Context, sess *session.Session[Data]) error {
	if sess == nil {
		return session.ErrSaveSession
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		err := s.Delete(ctx, sess.ID)
		if errors.Is(err, session.ErrNotFound) {
			return nil
		}
		return err
	}

	payload, err := json.Marshal(newSessionRecord(sess))
	if err != nil {
		return err
	}

	id := sess.ID.String()
	prev, err := s.load(ctx, id)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if prev != nil && prev.Token != sess.Token {
			pipe.Del(ctx, tokenKeyPrefix+prev.Token)
		}
		pipe.Set(ctx, sessionKeyPrefix+id, payload, ttl)
		pipe.Set(ctx, tokenKeyPrefix+sess.Token, id, ttl)
		return nil
	})
	return err
}

func (s *SessionStore[Data]) Delete(ctx context.Context, id uuid.UUID) error {
	rec, err := s.load(ctx, id.String())
	if err != nil {
		return err
	}

	return s.client.Del(ctx, sessionKeyPrefix+id.String(), tokenKeyPrefix+rec.Token).Err()
}

// DeleteExpired removes token index entries whose session document is gone.
// Session documents themselves expire through their Redis TTL.
func (s *SessionStore[Data]) DeleteExpired(ctx context.Context) (int64, error) {
	var removed int64

	iter := s.client.Scan(ctx, 0, tokenKeyPrefix+"*", s.scanBatch).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		id, err := s.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return removed, err
		}

		exists, err := s.client.Exists(ctx, sessionKeyPrefix+id).Result()
		if err != nil {
			return removed, err
		}
		if exists == 0 {
			n, err := s.client.Del(ctx, key).Result()
			if err != nil {
				return removed, err
			}
			removed += n
		}
	}

	return removed, iter.Err()
}

func (s *SessionStore[Data]) load(ctx context.Context, id string) (*sessionRecord[Data], error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrNotFound
		}
		return nil, err
	}

	var rec sessionRecord[Data]
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func newSessionRecord[Data any](sess *session.Session[Data]) sessionRecord[Data] {
	return sessionRecord[Data]{
		ID:          sess.ID,
		Token:       sess.Token,
		Fingerprint: sess.Fingerprint,
		IP:          sess.IP,
		UserAgent:   sess.UserAgent,
		Data:        sess.Data,
		ExpiresAt:   sess.ExpiresAt,
		CreatedAt:   sess.CreatedAt,
		UpdatedAt:   sess.UpdatedAt,
	}
}

func (r *sessionRecord[Data]) toSession() *session.Session[Data] {
	return &session.Session[Data]{
		ID:          r.ID,
		Token:       r.Token,
		Fingerprint: r.Fingerprint,
		IP:          r.IP,
		UserAgent:   r.UserAgent,
		Data:        r.Data,
		ExpiresAt:   r.ExpiresAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
