// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package loads a .env file on first use and uses caarlos0/env for parsing
// environment variables into struct fields.
//
//	type TrackerConfig struct {
//		PageTitle string `env:"PAGE_TITLE,required"`
//		EnvPrefix string `env:"ENV_PREFIX" envDefault:"WEBSITE"`
//	}
//
//	var cfg TrackerConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// Different types are cached independently; Reset clears the cache, which is
// mostly useful in tests.
package config
