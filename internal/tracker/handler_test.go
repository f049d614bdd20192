package tracker_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pagevisits/core/response"
	"github.com/dmitrymomot/pagevisits/core/router"
	"github.com/dmitrymomot/pagevisits/core/session"
	"github.com/dmitrymomot/pagevisits/internal/tracker"
	"github.com/dmitrymomot/pagevisits/middleware"
)

var testRuntime = tracker.RuntimeInfo{
	GoVersion: "go1.25.0",
	Compiler:  "gc",
	OS:        "linux",
	Arch:      "amd64",
}

func newTestHandler(t *testing.T, opts ...tracker.Option) *tracker.Handler {
	t.Helper()

	opts = append([]tracker.Option{
		tracker.WithEnviron(func() []string { return nil }),
		tracker.WithRuntimeInfo(testRuntime),
	}, opts...)

	h, err := tracker.NewHandler(tracker.Config{PageTitle: "Visit Tracker", EnvPrefix: "WEBSITE"}, opts...)
	require.NoError(t, err)
	return h
}

func newTestSession(t *testing.T) session.Session[tracker.SessionData] {
	t.Helper()

	sess, err := session.New[tracker.SessionData](session.NewSessionParams{IP: "192.0.2.1"}, time.Hour)
	require.NoError(t, err)
	return sess
}

// visit runs h.Visit with sess in the context and returns the recorder and
// the session left in the context by the handler.
func visit(t *testing.T, h *tracker.Handler, sess session.Session[tracker.SessionData], accept string) (*httptest.ResponseRecorder, session.Session[tracker.SessionData]) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rec := httptest.NewRecorder()
	ctx := router.NewContext(rec, req, nil)
	middleware.SetSession(ctx, sess)

	resp := h.Visit(ctx)
	require.NotNil(t, resp)
	require.NoError(t, resp(rec, ctx.Request()))

	stored, ok := middleware.GetSession[tracker.SessionData](ctx)
	require.True(t, ok)
	return rec, stored
}

func TestNewHandler(t *testing.T) {
	t.Parallel()

	t.Run("requires page title", func(t *testing.T) {
		t.Parallel()

		_, err := tracker.NewHandler(tracker.Config{EnvPrefix: "WEBSITE"})
		assert.ErrorIs(t, err, tracker.ErrMissingTitle)

		_, err = tracker.NewHandler(tracker.Config{PageTitle: "   "})
		assert.ErrorIs(t, err, tracker.ErrMissingTitle)
	})

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		h, err := tracker.NewHandler(tracker.Config{PageTitle: "Tracker"})
		require.NoError(t, err)
		assert.NotNil(t, h)
	})
}

func TestHandler_Visit(t *testing.T) {
	t.Parallel()

	t.Run("first visit creates counter", func(t *testing.T) {
		t.Parallel()

		h := newTestHandler(t)
		sess := newTestSession(t)

		rec, stored := visit(t, h, sess, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		body := rec.Body.String()
		assert.Contains(t, body, "<title>Visit Tracker</title>")
		assert.Contains(t, body, "Number of Visits = <font size='14'>1</font><br>")
		assert.Contains(t, body, "Session ID = "+sess.ID.String()+"<br>")
		assert.Contains(t, body, "Your IP Address = 192.0.2.1<br>")

		require.NotNil(t, stored.Data.Analytics)
		assert.Equal(t, 1, stored.Data.Analytics.Value())
		assert.True(t, stored.IsModified())
		assert.Nil(t, sess.Data.Analytics, "original session must not be mutated")
	})

	t.Run("increments existing counter", func(t *testing.T) {
		t.Parallel()

		h := newTestHandler(t)
		sess := newTestSession(t)
		counter := tracker.NewCounter(context.Background(), nil)
		for range 4 {
			counter.Increment()
		}
		sess.SetData(tracker.SessionData{Analytics: counter})

		rec, stored := visit(t, h, sess, "")

		assert.Contains(t, rec.Body.String(), "Number of Visits = <font size='14'>5</font>")
		assert.Equal(t, 5, stored.Data.Analytics.Value())
		assert.Equal(t, 4, counter.Value(), "counter is copied before increment")
	})

	t.Run("reports previous access time", func(t *testing.T) {
		t.Parallel()

		h := newTestHandler(t)
		sess := newTestSession(t)
		lastAccess := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
		sess.UpdatedAt = lastAccess

		rec, stored := visit(t, h, sess, "application/json")

		var page tracker.Page
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		assert.True(t, page.LastAccessedAt.Equal(lastAccess))
		assert.True(t, page.CreatedAt.Equal(sess.CreatedAt))
		assert.True(t, stored.UpdatedAt.After(lastAccess))
	})

	t.Run("renders access times in date format", func(t *testing.T) {
		t.Parallel()

		h := newTestHandler(t)
		sess := newTestSession(t)
		sess.CreatedAt = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
		sess.UpdatedAt = time.Date(2024, 3, 1, 10, 30, 5, 0, time.UTC)

		rec, _ := visit(t, h, sess, "")

		body := rec.Body.String()
		assert.Contains(t, body, "Session Creation Time = Fri Mar 01 09:00:00 UTC 2024<br>")
		assert.Contains(t, body, "Session Last Access Time = Fri Mar 01 10:30:05 UTC 2024<br>")
	})

	t.Run("lists prefixed environment variables", func(t *testing.T) {
		t.Parallel()

		h := newTestHandler(t, tracker.WithEnviron(func() []string {
			return []string{"WEBSITE_X=a", "OTHER=b", "WEBSITE_A=z"}
		}))

		rec, _ := visit(t, h, newTestSession(t), "")

		body := rec.Body.String()
		assert.Contains(t, body, "WEBSITE_X = a<br>")
		assert.NotContains(t, body, "OTHER")
		assert.Less(t, strings.Index(body, "WEBSITE_A"), strings.Index(body, "WEBSITE_X"))
	})

	t.Run("shows runtime info", func(t *testing.T) {
		t.Parallel()

		h := newTestHandler(t)
		rec, _ := visit(t, h, newTestSession(t), "")

		body := rec.Body.String()
		assert.Contains(t, body, "Go Version = go1.25.0<br>")
		assert.Contains(t, body, "Go Compiler = gc<br>")
		assert.Contains(t, body, "Platform = linux/amd64<br>")
		assert.NotContains(t, body, "Module = ")
	})

	t.Run("escapes dynamic values", func(t *testing.T) {
		t.Parallel()

		h, err := tracker.NewHandler(
			tracker.Config{PageTitle: "<script>alert(1)</script>", EnvPrefix: "WEBSITE"},
			tracker.WithEnviron(func() []string { return []string{"WEBSITE_X=<b>bold</b>"} }),
			tracker.WithRuntimeInfo(testRuntime),
		)
		require.NoError(t, err)

		rec, _ := visit(t, h, newTestSession(t), "")

		body := rec.Body.String()
		assert.NotContains(t, body, "<script>")
		assert.NotContains(t, body, "<b>bold</b>")
		assert.Contains(t, body, "&lt;script&gt;")
		assert.Contains(t, body, "&lt;b&gt;bold&lt;/b&gt;")
	})

	t.Run("json response", func(t *testing.T) {
		t.Parallel()

		h := newTestHandler(t, tracker.WithEnviron(func() []string { return []string{"WEBSITE_X=a"} }))
		sess := newTestSession(t)

		rec, _ := visit(t, h, sess, "application/json")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

		var page tracker.Page
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		assert.Equal(t, "Visit Tracker", page.Title)
		assert.Equal(t, 1, page.Visits)
		assert.Equal(t, sess.ID.String(), page.SessionID)
		assert.Equal(t, "192.0.2.1", page.ClientIP)
		assert.Equal(t, []tracker.EnvVar{{Name: "WEBSITE_X", Value: "a"}}, page.Env)
		assert.Equal(t, testRuntime, page.Runtime)
	})

	t.Run("missing session is an internal error", func(t *testing.T) {
		t.Parallel()

		h := newTestHandler(t)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := router.NewContext(rec, req, nil)

		err := h.Visit(ctx)(rec, req)

		var httpErr response.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, tracker.ErrNoSession.Error(), httpErr.Details["cause"])
	})

	t.Run("zero session is an internal error", func(t *testing.T) {
		t.Parallel()

		h := newTestHandler(t)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := router.NewContext(rec, req, nil)
		middleware.SetSession(ctx, session.Session[tracker.SessionData]{})

		err := h.Visit(ctx)(rec, req)

		var httpErr response.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	})
}
