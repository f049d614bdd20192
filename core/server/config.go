package server

import "time"

// Config holds listener settings and http.Server limits.
type Config struct {
	Addr string `env:"SERVER_ADDR" envDefault:":8080"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`

	MaxHeaderBytes int `env:"SERVER_MAX_HEADER_BYTES" envDefault:"1048576"`
}

// DefaultConfig mirrors the envDefault values above.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		IdleTimeout:     time.Minute,
		ShutdownTimeout: 30 * time.Second,
		MaxHeaderBytes:  1 << 20,
	}
}

// merge returns c with zero fields taken from base.
func (c Config) merge(base Config) Config {
	if c.Addr == "" {
		c.Addr = base.Addr
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = base.ReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = base.WriteTimeout
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = base.IdleTimeout
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = base.ShutdownTimeout
	}
	if c.MaxHeaderBytes <= 0 {
		c.MaxHeaderBytes = base.MaxHeaderBytes
	}
	return c
}

// NewFromConfig creates a Server from cfg. Zero durations and limits fall
// back to DefaultConfig; opts are applied afterwards.
func NewFromConfig(cfg Config, opts ...Option) (*Server, error) {
	if cfg.Addr == "" {
		return nil, ErrMissingAddress
	}
	return newServer(cfg.merge(DefaultConfig()), opts), nil
}
