// Package router provides a small generic HTTP router with middleware support.
//
// Routes are matched on the exact request path and the HTTP method. Each route
// is served by a handler.HandlerFunc bound to a context type C; the default
// *Context type needs no configuration, custom context types are plugged in with
// WithContextFactory.
//
//	r := router.New[*router.Context]()
//	r.Use(middleware.RequestID[*router.Context]())
//	r.Method("/", home, http.MethodGet, http.MethodPost)
//	http.ListenAndServe(":8080", r)
//
// Unknown paths are reported as ErrNotFound, known paths with an unregistered
// method as ErrMethodNotAllowed (with an Allow header). Panics in handlers are
// recovered and passed to the error handler as a PanicError.
package router
