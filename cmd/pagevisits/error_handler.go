package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/pagevisits/core/logger"
	"github.com/dmitrymomot/pagevisits/core/response"
	"github.com/dmitrymomot/pagevisits/core/router"
)

// errorHandler writes JSON errors to clients that prefer JSON and plain text
// otherwise, negotiating like the visit page. Server errors are logged.
func errorHandler(log *slog.Logger) func(ctx *router.Context, err error) {
	return func(ctx *router.Context, err error) {
		r := ctx.Request()

		status := http.StatusInternalServerError
		var sc interface{ StatusCode() int }
		if errors.As(err, &sc) {
			status = sc.StatusCode()
		}
		if status >= http.StatusInternalServerError {
			log.ErrorContext(ctx, "request failed",
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.Error(err),
			)
		}

		if response.PrefersJSON(r) {
			response.JSONErrorHandler(ctx, err)
			return
		}
		response.ErrorHandler(ctx, err)
	}
}
