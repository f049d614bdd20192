// Package logger builds log/slog loggers and provides attribute helpers for the
// values this application logs most often.
//
//	log := logger.New(
//		logger.WithDevelopment("pagevisits"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//	log.Info("server starting", logger.Component("server"), logger.Event("startup"))
//
// Development loggers write text, production loggers write JSON. Context
// extractors pull request-scoped values (request ID, client IP) out of the
// context passed to the *Context logging methods.
//
// Attribute helpers return an empty slog.Attr for empty input, which slog
// drops, so callers never need nil checks:
//
//	log.ErrorContext(ctx, "store failed", logger.Error(err))
package logger
