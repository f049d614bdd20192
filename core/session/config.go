package session

import "time"

// Config holds session manager configuration.
type Config struct {
	TTL             time.Duration `env:"SESSION_TTL" envDefault:"24h"`             // idle timeout
	TouchInterval   time.Duration `env:"SESSION_TOUCH_INTERVAL" envDefault:"5m"`   // min time between expiry extensions
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"10m"` // expired-session sweep period
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		TTL:             24 * time.Hour,
		TouchInterval:   5 * time.Minute,
		CleanupInterval: 10 * time.Minute,
	}
}

// Option is a functional option for configuring the session manager.
type Option func(*Config)

// WithTTL sets the session time-to-live.
func WithTTL(ttl time.Duration) Option {
	return func(c *Config) {
		c.TTL = ttl
	}
}

// WithTouchInterval sets the minimum time between expiry extensions.
// Zero extends the expiry on every stored request.
func WithTouchInterval(interval time.Duration) Option {
	return func(c *Config) {
		c.TouchInterval = interval
	}
}

// WithConfig applies every non-zero field of cfg.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		if cfg.TTL > 0 {
			c.TTL = cfg.TTL
		}
		if cfg.TouchInterval > 0 {
			c.TouchInterval = cfg.TouchInterval
		}
		if cfg.CleanupInterval > 0 {
			c.CleanupInterval = cfg.CleanupInterval
		}
	}
}
