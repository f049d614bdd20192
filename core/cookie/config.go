package cookie

import (
	"net/http"
	"strings"
)

// Config is the environment form of the manager settings.
// COOKIE_SECRETS is a comma-separated list, newest first.
type Config struct {
	Secrets  string        `env:"COOKIE_SECRETS,required"`
	Path     string        `env:"COOKIE_PATH" envDefault:"/"`
	Domain   string        `env:"COOKIE_DOMAIN"`
	MaxAge   int           `env:"COOKIE_MAX_AGE" envDefault:"0"`
	Secure   bool          `env:"COOKIE_SECURE" envDefault:"false"`
	HttpOnly bool          `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
	SameSite http.SameSite `env:"COOKIE_SAME_SITE" envDefault:"2"` // lax
	MaxSize  int           `env:"COOKIE_MAX_SIZE" envDefault:"4096"`
}

// NewFromConfig creates a Manager from cfg. Empty path and zero SameSite keep
// the package defaults; opts are applied on top.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	base := func(o *Options) {
		if cfg.Path != "" {
			o.Path = cfg.Path
		}
		if cfg.SameSite != 0 {
			o.SameSite = cfg.SameSite
		}
		o.Domain = cfg.Domain
		o.MaxAge = cfg.MaxAge
		o.Secure = cfg.Secure
		o.HttpOnly = cfg.HttpOnly
	}

	m, err := New(splitSecrets(cfg.Secrets), append([]Option{base}, opts...)...)
	if err != nil {
		return nil, err
	}
	if cfg.MaxSize > 0 {
		m.maxSize = cfg.MaxSize
	}
	return m, nil
}

func splitSecrets(s string) []string {
	var secrets []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			secrets = append(secrets, part)
		}
	}
	return secrets
}
