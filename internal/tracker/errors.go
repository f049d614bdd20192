package tracker

import "errors"

var (
	// ErrMissingTitle is returned by NewHandler when no page title is configured.
	ErrMissingTitle = errors.New("tracker: page title is required")
	// ErrNoSession is returned when the request carries no session.
	ErrNoSession = errors.New("tracker: no session in request context")
	// ErrNegativeCount is returned when decoding a counter below zero.
	ErrNegativeCount = errors.New("tracker: page views cannot be negative")
)
