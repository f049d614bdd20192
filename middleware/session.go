package middleware

import (
	"log/slog"

	"github.com/dmitrymomot/pagevisits/core/handler"
	"github.com/dmitrymomot/pagevisits/core/logger"
	"github.com/dmitrymomot/pagevisits/core/response"
	"github.com/dmitrymomot/pagevisits/core/session"
)

type sessionKey struct{}

// SessionTransport loads the session for a request and stores it afterwards.
type SessionTransport[Data any] interface {
	Load(handler.Context) (session.Session[Data], error)
	Store(handler.Context, session.Session[Data]) error
}

// SessionConfig configures the session middleware.
type SessionConfig[C handler.Context, Data any] struct {
	// Skip bypasses the middleware; skipped requests have no session.
	Skip      func(ctx C) bool
	Transport SessionTransport[Data] // required
	Logger    *slog.Logger
	// ErrorHandler builds the response when storing fails.
	// Defaults to response.Error(err).
	ErrorHandler func(ctx C, err error) handler.Response
}

// Session loads the request's session through transport, exposes it via
// GetSession and persists whatever session is in the context once the
// handler returns:
//
//	r.Use(middleware.Session[*router.Context, tracker.SessionData](transport))
//
//	func visit(ctx *router.Context) handler.Response {
//		sess := middleware.MustGetSession[tracker.SessionData](ctx)
//		data := sess.Data.Clone()
//		data.Analytics.Increment()
//		sess.SetData(data)
//		middleware.SetSession(ctx, sess)
//		return response.String("ok")
//	}
func Session[C handler.Context, Data any](transport SessionTransport[Data]) handler.Middleware[C] {
	return SessionWithConfig(SessionConfig[C, Data]{
		Transport: transport,
	})
}

// SessionWithConfig creates a session middleware with custom configuration.
//
// Load errors are logged and the request continues with an empty session.
// Store errors are logged and replace the handler's response with the one
// built by ErrorHandler.
func SessionWithConfig[C handler.Context, Data any](cfg SessionConfig[C, Data]) handler.Middleware[C] {
	if cfg.Transport == nil {
		panic("session middleware: transport is required")
	}

	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(ctx C, err error) handler.Response {
			return response.Error(err)
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			sess, err := cfg.Transport.Load(ctx)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return response.Error(ctxErr)
				}
				cfg.Logger.WarnContext(ctx, "session load failed, continuing without session", logger.Error(err))
				sess = session.Session[Data]{}
			}

			ctx.SetValue(sessionKey{}, sess)

			resp := next(ctx)

			// Handler may have replaced the session.
			currentSess, ok := GetSession[Data](ctx)
			if !ok || currentSess.IsZero() {
				return resp
			}

			if err := cfg.Transport.Store(ctx, currentSess); err != nil {
				cfg.Logger.ErrorContext(ctx, "session store failed",
					logger.SessionID(currentSess.ID.String()),
					logger.Error(err),
				)
				return cfg.ErrorHandler(ctx, err)
			}

			return resp
		}
	}
}

// GetSession returns the session placed in ctx by the middleware.
func GetSession[Data any](ctx handler.Context) (session.Session[Data], bool) {
	if ctx == nil {
		return session.Session[Data]{}, false
	}

	sess, ok := ctx.Value(sessionKey{}).(session.Session[Data])
	return sess, ok
}

// MustGetSession is GetSession for handlers mounted behind the middleware.
// It panics when ctx has no session.
func MustGetSession[Data any](ctx handler.Context) session.Session[Data] {
	sess, ok := GetSession[Data](ctx)
	if !ok {
		panic("session not found in context")
	}
	return sess
}

// SetSession replaces the session that will be persisted for this request.
func SetSession[Data any](ctx handler.Context, sess session.Session[Data]) {
	ctx.SetValue(sessionKey{}, sess)
}
