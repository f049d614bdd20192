package router

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrymomot/pagevisits/core/handler"
)

// methods lists the HTTP methods a route can be registered for.
var methods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodConnect,
	http.MethodOptions,
	http.MethodTrace,
}

// mux is the private implementation of Router.
type mux[C handler.Context] struct {
	mu           sync.RWMutex
	routes       map[string]map[string]handler.HandlerFunc[C] // path -> method -> handler
	order        []Route
	middlewares  []handler.Middleware[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request, map[string]string) C
	logger       *slog.Logger
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		routes:       make(map[string]map[string]handler.HandlerFunc[C]),
		errorHandler: defaultErrorHandler[C],
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.newContext == nil {
		m.newContext = func(w http.ResponseWriter, r *http.Request, params map[string]string) C {
			var zero C
			if _, ok := any(zero).(*Context); ok {
				return any(NewContext(w, r, params)).(C)
			}
			panic("router: context factory is required for custom context types")
		}
	}

	return m
}

// ServeHTTP implements http.Handler.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := newResponseWriter(w)
	ctx := m.newContext(ww, r, nil)

	defer func() {
		if p := recover(); p != nil {
			panicErr := &panicError{value: p, stack: debug.Stack()}
			if ww.Written() {
				m.logger.Error("panic after response written",
					"value", panicErr.value,
					"stack", string(panicErr.stack),
					"path", r.URL.Path,
					"method", r.Method,
					"status", ww.Status(),
				)
				return
			}
			m.errorHandler(ctx, panicErr)
		}
	}()

	path := r.URL.Path
	if path == "" {
		path = "/"
	}

	m.mu.RLock()
	byMethod, found := m.routes[path]
	fn := byMethod[r.Method]
	if fn == nil && r.Method == http.MethodHead {
		fn = byMethod[http.MethodGet]
	}
	var allowed []string
	if found && fn == nil {
		for _, method := range methods {
			if byMethod[method] != nil {
				allowed = append(allowed, method)
			}
		}
	}
	m.mu.RUnlock()

	switch {
	case !found:
		m.errorHandler(ctx, ErrNotFound)
		return
	case fn == nil:
		ww.Header().Set("Allow", strings.Join(allowed, ", "))
		m.errorHandler(ctx, ErrMethodNotAllowed)
		return
	}

	resp := fn(ctx)
	if resp == nil {
		m.errorHandler(ctx, ErrNilResponse)
		return
	}

	// Middleware may have replaced the request via SetValue.
	if err := resp(ww, ctx.Request()); err != nil {
		m.errorHandler(ctx, err)
	}
}

// Get registers a handler for GET requests.
func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C]) {
	m.handle(pattern, h, http.MethodGet)
}

// Post registers a handler for POST requests.
func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C]) {
	m.handle(pattern, h, http.MethodPost)
}

// Handle registers a handler for all HTTP methods.
func (m *mux[C]) Handle(pattern string, h handler.HandlerFunc[C]) {
	m.handle(pattern, h, methods...)
}

// Method registers a handler for one or more specific HTTP methods.
func (m *mux[C]) Method(pattern string, h handler.HandlerFunc[C], ms ...string) {
	if len(ms) == 0 {
		panic(fmt.Errorf("%w: no methods provided", ErrInvalidMethod))
	}
	normalized := make([]string, 0, len(ms))
	for _, method := range ms {
		method = strings.ToUpper(method)
		if !slices.Contains(methods, method) {
			panic(fmt.Errorf("%w: %s", ErrInvalidMethod, method))
		}
		if !slices.Contains(normalized, method) {
			normalized = append(normalized, method)
		}
	}
	m.handle(pattern, h, normalized...)
}

// Use appends middleware to the router.
func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.order) > 0 {
		panic("router: all middlewares must be defined before routes")
	}
	m.middlewares = append(m.middlewares, middlewares...)
}

// Routes returns all registered routes in registration order.
func (m *mux[C]) Routes() []Route {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.order)
}

func (m *mux[C]) handle(pattern string, fn handler.HandlerFunc[C], ms ...string) {
	if len(pattern) == 0 || pattern[0] != '/' {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern))
	}
	if fn == nil {
		panic(fmt.Errorf("router: nil handler for '%s'", pattern))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	h := fn
	if len(m.middlewares) > 0 {
		h = chain(m.middlewares, fn)
	}

	byMethod := m.routes[pattern]
	if byMethod == nil {
		byMethod = make(map[string]handler.HandlerFunc[C], len(ms))
		m.routes[pattern] = byMethod
	}
	for _, method := range ms {
		byMethod[method] = h
		m.order = append(m.order, Route{Method: method, Pattern: pattern})
	}
}
