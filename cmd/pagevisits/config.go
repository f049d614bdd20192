package main

import (
	"github.com/dmitrymomot/pagevisits/core/cookie"
	"github.com/dmitrymomot/pagevisits/core/server"
	"github.com/dmitrymomot/pagevisits/core/session"
	"github.com/dmitrymomot/pagevisits/core/sessiontransport"
	"github.com/dmitrymomot/pagevisits/integration/database/redis"
	"github.com/dmitrymomot/pagevisits/internal/tracker"
)

const (
	storeMemory = "memory"
	storeRedis  = "redis"
)

type Config struct {
	AppName  string `env:"APP_NAME" envDefault:"pagevisits"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL"`

	// Session backend: memory or redis
	SessionStore string `env:"SESSION_STORE" envDefault:"memory"`

	Tracker          tracker.Config
	Cookie           cookie.Config
	Session          session.Config
	SessionTransport sessiontransport.CookieConfig
	Redis            redis.Config
	Server           server.Config
}

func (c Config) isProduction() bool {
	return c.AppEnv == "production"
}
