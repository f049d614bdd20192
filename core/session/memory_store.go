package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps sessions in process memory. It is safe for concurrent use.
// Sessions are lost on restart and are not shared between processes.
type MemoryStore[Data any] struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]Session[Data]
	tokens   map[string]uuid.UUID
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore[Data any]() *MemoryStore[Data] {
	return &MemoryStore[Data]{
		sessions: make(map[uuid.UUID]Session[Data]),
		tokens:   make(map[string]uuid.UUID),
	}
}

func (s *MemoryStore[Data]) GetByID(_ context.Context, id uuid.UUID) (*Session[Data], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneSession(sess), nil
}

func (s *MemoryStore[Data]) GetByToken(_ context.Context, token string) (*Session[Data], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.tokens[token]
	if !ok {
		return nil, ErrNotFound
	}
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneSession(sess), nil
}

func (s *MemoryStore[Data]) Save(_ context.Context, sess *Session[Data]) error {
	if sess == nil {
		return ErrSaveSession
	}

	stored := *cloneSession(*sess)
	stored.isModified = false

	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.sessions[sess.ID]; ok && prev.Token != sess.Token {
		delete(s.tokens, prev.Token)
	}
	s.sessions[sess.ID] = stored
	s.tokens[sess.Token] = sess.ID
	return nil
}

func (s *MemoryStore[Data]) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.tokens, sess.Token)
	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore[Data]) DeleteExpired(_ context.Context) (int64, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.tokens, sess.Token)
			delete(s.sessions, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored sessions, expired ones included.
func (s *MemoryStore[Data]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func cloneSession[Data any](sess Session[Data]) *Session[Data] {
	if c, ok := any(sess.Data).(Cloner[Data]); ok {
		sess.Data = c.Clone()
	}
	return &sess
}
