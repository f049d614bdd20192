package health

import (
	"github.com/dmitrymomot/pagevisits/core/handler"
	"github.com/dmitrymomot/pagevisits/core/response"
)

// Liveness indicates if the service process is running.
// Always returns "ALIVE" with 200 OK. No dependency checks.
//
//	r.Get("/health/live", health.Liveness[*router.Context])
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ALIVE")
}
