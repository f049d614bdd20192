package router

import (
	"net/http"

	"github.com/dmitrymomot/pagevisits/core/handler"
)

// Router is the routing interface for handling HTTP requests.
type Router[C handler.Context] interface {
	http.Handler
	Routes

	Get(pattern string, h handler.HandlerFunc[C])
	Post(pattern string, h handler.HandlerFunc[C])

	// Handle registers h for every HTTP method.
	Handle(pattern string, h handler.HandlerFunc[C])
	// Method registers h for the listed HTTP methods.
	Method(pattern string, h handler.HandlerFunc[C], methods ...string)

	// Use appends middleware. All middleware must be added before routes.
	Use(middlewares ...handler.Middleware[C])
}

// Routes provides route introspection.
type Routes interface {
	Routes() []Route
}

// Route describes a single registered route.
type Route struct {
	Method  string
	Pattern string
}

// New creates a new router with the given options.
func New[C handler.Context](opts ...Option[C]) Router[C] {
	return newMux[C](opts...)
}
