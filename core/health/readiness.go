package health

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/pagevisits/core/handler"
	"github.com/dmitrymomot/pagevisits/core/logger"
	"github.com/dmitrymomot/pagevisits/core/response"
)

// Check is a named dependency probe.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// Readiness verifies all service dependencies are functioning.
// Returns "READY" if all checks pass, 503 Service Unavailable naming the
// first failing check otherwise.
//
//	r.Get("/health/ready", health.Readiness[*router.Context](log,
//		health.Check{Name: "redis", Fn: redis.Healthcheck(client)},
//	))
func Readiness[C handler.Context](log *slog.Logger, checks ...Check) handler.HandlerFunc[C] {
	if log == nil {
		log = logger.Discard()
	}
	return func(ctx C) handler.Response {
		for _, c := range checks {
			if err := c.Fn(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed",
					logger.Component(c.Name),
					logger.Error(err),
				)
				return response.Error(response.ErrServiceUnavailable.WithMessage(c.Name + " is not ready"))
			}
		}

		return response.String("READY")
	}
}
