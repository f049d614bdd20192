package tracker

import (
	"log/slog"
	"os"
	"strings"

	"github.com/dmitrymomot/pagevisits/core/handler"
	"github.com/dmitrymomot/pagevisits/core/logger"
	"github.com/dmitrymomot/pagevisits/core/response"
	"github.com/dmitrymomot/pagevisits/middleware"
	"github.com/dmitrymomot/pagevisits/pkg/clientip"
)

// Config holds the page settings.
type Config struct {
	PageTitle string `env:"PAGE_TITLE,required"`
	EnvPrefix string `env:"ENV_PREFIX" envDefault:"WEBSITE"`
}

// Handler counts visits per session and renders the visit page.
// It holds no per-request state.
type Handler struct {
	cfg     Config
	log     *slog.Logger
	environ func() []string
	runtime RuntimeInfo
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger used for visit and counter events.
func WithLogger(log *slog.Logger) Option {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

// WithEnviron replaces os.Environ as the source of environment variables.
func WithEnviron(environ func() []string) Option {
	return func(h *Handler) {
		if environ != nil {
			h.environ = environ
		}
	}
}

// WithRuntimeInfo overrides the runtime details shown on the page.
func WithRuntimeInfo(info RuntimeInfo) Option {
	return func(h *Handler) {
		h.runtime = info
	}
}

// NewHandler creates a visit handler. The page title is required.
func NewHandler(cfg Config, opts ...Option) (*Handler, error) {
	if strings.TrimSpace(cfg.PageTitle) == "" {
		return nil, ErrMissingTitle
	}

	h := &Handler{
		cfg:     cfg,
		log:     logger.Discard(),
		environ: os.Environ,
		runtime: ReadRuntimeInfo(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.log = h.log.With(logger.Component("tracker"))

	return h, nil
}

// Visit increments the session's page-view counter and renders the page.
// The counter is created on the first visit of a session.
func (h *Handler) Visit(ctx handler.Context) handler.Response {
	sess, ok := middleware.GetSession[SessionData](ctx)
	if !ok || sess.IsZero() {
		return response.Error(response.ErrInternalServerError.WithError(ErrNoSession))
	}

	lastAccess := sess.UpdatedAt

	data := sess.Data.Clone()
	if data.Analytics == nil {
		data.Analytics = NewCounter(ctx, h.log)
	}
	data.Analytics.Increment()

	sess.SetData(data)
	middleware.SetSession(ctx, sess)

	h.log.InfoContext(ctx, "page visited",
		logger.Event("visit"),
		logger.PageViews(data.Analytics.Value()),
		logger.SessionID(sess.ID.String()),
	)

	r := ctx.Request()
	ip, ok := middleware.GetClientIP(ctx)
	if !ok {
		ip = clientip.GetIP(r)
	}

	page := Page{
		Title:          h.cfg.PageTitle,
		Visits:         data.Analytics.Value(),
		SessionID:      sess.ID.String(),
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: lastAccess,
		ClientIP:       ip,
		Env:            FilterEnv(h.environ(), h.cfg.EnvPrefix),
		Runtime:        h.runtime,
	}

	if response.PrefersJSON(r) {
		return response.JSON(page)
	}
	return response.Templ(PageView(page))
}

// VisitHandler adapts h.Visit to a router's context type.
func VisitHandler[C handler.Context](h *Handler) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		return h.Visit(ctx)
	}
}
