// Package handler defines the request-processing contracts shared by the router,
// middleware and application handlers.
//
// A handler receives a typed request context and returns a Response: a deferred
// render function. Returning a value instead of writing directly lets middleware
// decorate or replace the response before anything reaches the client.
//
//	type Response func(w http.ResponseWriter, r *http.Request) error
//	type HandlerFunc[C Context] func(ctx C) Response
//	type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
//
// Any type implementing Context can be used as C, which allows applications to
// carry their own request-scoped helpers while staying compatible with the
// generic middleware in this module.
//
// Example:
//
//	func hello(ctx *router.Context) handler.Response {
//		return response.String("hello from " + ctx.Request().URL.Path)
//	}
package handler
