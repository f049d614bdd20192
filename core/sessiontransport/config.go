package sessiontransport

import (
	"github.com/dmitrymomot/pagevisits/core/cookie"
	"github.com/dmitrymomot/pagevisits/core/session"
)

// CookieConfig provides environment-based configuration for cookie-based session transport.
type CookieConfig struct {
	// CookieName is the name of the session cookie
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"__session"`
}

// DefaultCookieConfig returns a CookieConfig with sensible defaults.
func DefaultCookieConfig() CookieConfig {
	return CookieConfig{
		CookieName: "__session",
	}
}

// NewCookieFromConfig creates a cookie-based session transport from configuration.
func NewCookieFromConfig[Data any](cfg CookieConfig, mgr *session.Manager[Data], cookieMgr *cookie.Manager) *Cookie[Data] {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieConfig().CookieName
	}
	return NewCookie(mgr, cookieMgr, cfg.CookieName)
}
