// Package middleware provides generic HTTP middleware for the core/router package.
//
// Every middleware is a handler.Middleware[C] and works with any context type
// implementing handler.Context:
//
//	r := router.New[*router.Context]()
//	r.Use(
//		middleware.RequestID[*router.Context](),
//		middleware.ClientIP[*router.Context](),
//		middleware.LoggingWithLogger[*router.Context](log),
//		middleware.Session[*router.Context, Data](transport),
//	)
//
// Values placed in the context are read back with the matching getter:
// GetRequestID, GetClientIP and GetSession.
package middleware
