package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"
)

// MaxCookieSize is the default limit for a serialized cookie.
const MaxCookieSize = 4096

const minSecretLength = 32

// Manager reads and writes cookies, optionally signed with HMAC-SHA256.
// Safe for concurrent use.
type Manager struct {
	secrets  []string
	defaults Options
	maxSize  int
}

// New creates a Manager. secrets[0] signs, every secret verifies, so a
// rotated-out secret stays valid while it remains in the list. The defaults
// are Path "/", HttpOnly and SameSite=Lax.
func New(secrets []string, opts ...Option) (*Manager, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}
	for i, s := range secrets {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret #%d has %d characters, need %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
	}

	defaults := Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode}
	return &Manager{
		secrets:  secrets,
		defaults: defaults.with(opts),
		maxSize:  MaxCookieSize,
	}, nil
}

// Set writes a plain cookie.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	c := m.defaults.with(opts).cookie(name, value)
	if size := len(c.String()); size > m.maxSize {
		return ErrCookieTooLarge{Name: name, Size: size, Max: m.maxSize}
	}
	http.SetCookie(w, c)
	return nil
}

// Get returns the raw value of a cookie.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if errors.Is(err, http.ErrNoCookie) {
		return "", ErrCookieNotFound
	}
	if err != nil {
		return "", err
	}
	return c.Value, nil
}

// Delete tells the client to drop the cookie.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	c := m.defaults.with([]Option{WithMaxAge(-1)}).cookie(name, "")
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)
}

// SetSigned writes value with an HMAC so it cannot be altered by the client.
// The value itself is only encoded, not encrypted.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, opts ...Option) error {
	return m.Set(w, name, m.sign(value), opts...)
}

// GetSigned returns the value of a cookie written by SetSigned.
// It fails with ErrInvalidFormat or ErrInvalidSignature on tampering.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return m.verify(raw)
}

// sign encodes value as "base64(value)|base64(mac)".
func (m *Manager) sign(value string) string {
	return encode([]byte(value)) + "|" + mac(m.secrets[0], []byte(value))
}

func (m *Manager) verify(raw string) (string, error) {
	encoded, sig, ok := strings.Cut(raw, "|")
	if !ok {
		return "", ErrInvalidFormat
	}
	value, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidFormat
	}

	matches := func(secret string) bool {
		return subtle.ConstantTimeCompare([]byte(sig), []byte(mac(secret, value))) == 1
	}
	if !slices.ContainsFunc(m.secrets, matches) {
		return "", ErrInvalidSignature
	}
	return string(value), nil
}

func mac(secret string, value []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(value)
	return encode(h.Sum(nil))
}

func encode(b []byte) string {
	return base64.URLEncoding.EncodeToString(b)
}
