package handler

import "net/http"

// Response renders an HTTP response: headers, status and body.
// Rendering errors are passed to the router's error handler.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc is a request handler bound to a concrete context type.
type HandlerFunc[C Context] func(ctx C) Response

// ErrorHandler handles errors produced while serving a request.
type ErrorHandler[C Context] func(ctx C, err error)

// Middleware wraps a handler to add cross-cutting behavior.
type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
