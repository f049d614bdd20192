package server

import "errors"

var (
	ErrMissingAddress       = errors.New("server: listen address is required")
	ErrServerAlreadyRunning = errors.New("server: already running")
	ErrListen               = errors.New("server: failed to bind listener")
	ErrHTTPServer           = errors.New("server: serve failed")
	ErrShutdown             = errors.New("server: graceful shutdown failed")
)
