package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session is a client session carrying typed application data.
// Sessions are passed by value; stores hand out copies.
type Session[Data any] struct {
	// ID is the stable session identifier; it never changes.
	ID uuid.UUID

	// Token is the secure session token (32 bytes base64url) sent to the client.
	// It can be rotated without changing ID.
	Token string

	Fingerprint string
	IP          string
	UserAgent   string

	// Data holds application-specific session state.
	Data Data

	ExpiresAt time.Time
	CreatedAt time.Time
	// UpdatedAt is the last time the session was changed or touched.
	UpdatedAt time.Time
	DeletedAt time.Time

	isModified bool
}

// NewSessionParams contains parameters for creating a new session.
type NewSessionParams struct {
	Fingerprint string
	IP          string
	UserAgent   string
}

// New creates a new session with generated token and ID.
// The session is marked as modified and ready to be saved.
func New[Data any](params NewSessionParams, ttl time.Duration) (Session[Data], error) {
	if params.IP == "" {
		return Session[Data]{}, ErrMissingIP
	}

	token, err := generateToken()
	if err != nil {
		return Session[Data]{}, errors.Join(ErrTokenGeneration, err)
	}

	now := time.Now()
	return Session[Data]{
		ID:          uuid.New(),
		Token:       token,
		Fingerprint: params.Fingerprint,
		IP:          params.IP,
		UserAgent:   params.UserAgent,
		ExpiresAt:   now.Add(ttl),
		CreatedAt:   now,
		UpdatedAt:   now,
		isModified:  true,
	}, nil
}

// Refresh rotates the session token without changing the session ID.
func (s *Session[Data]) Refresh() error {
	token, err := generateToken()
	if err != nil {
		return errors.Join(ErrTokenGeneration, err)
	}
	s.Token = token
	s.UpdatedAt = time.Now()
	s.isModified = true
	return nil
}

// Invalidate marks the session for deletion.
func (s *Session[Data]) Invalidate() {
	s.DeletedAt = time.Now()
	s.isModified = true
}

// SetData replaces the session's application data.
func (s *Session[Data]) SetData(data Data) {
	s.Data = data
	s.UpdatedAt = time.Now()
	s.isModified = true
}

// Touch extends the expiration to now+ttl once at least touchInterval has
// passed since the expiration was last extended.
func (s *Session[Data]) Touch(ttl, touchInterval time.Duration) {
	now := time.Now()
	lastExtended := s.ExpiresAt.Add(-ttl)
	if now.Sub(lastExtended) >= touchInterval {
		s.ExpiresAt = now.Add(ttl)
		s.UpdatedAt = now
		s.isModified = true
	}
}

// IsZero reports whether s is the zero session (never created).
func (s Session[Data]) IsZero() bool {
	return s.ID == uuid.Nil
}

// IsDeleted returns true if the session is marked for deletion.
func (s Session[Data]) IsDeleted() bool {
	return !s.DeletedAt.IsZero()
}

// IsModified returns true if the session has been modified and needs saving.
func (s Session[Data]) IsModified() bool {
	return s.isModified
}

// IsExpired returns true if the session has expired.
func (s Session[Data]) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// generateToken returns 32 random bytes encoded as unpadded base64url.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
