package sessiontransport_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pagevisits/core/cookie"
	"github.com/dmitrymomot/pagevisits/core/router"
	"github.com/dmitrymomot/pagevisits/core/session"
	"github.com/dmitrymomot/pagevisits/core/sessiontransport"
)

const cookieName = "__session"

type testData struct {
	Theme string
}

type fixture struct {
	store     *session.MemoryStore[testData]
	manager   *session.Manager[testData]
	cookies   *cookie.Manager
	transport *sessiontransport.Cookie[testData]
}

func newFixture(t *testing.T, opts ...session.Option) fixture {
	t.Helper()

	cookies, err := cookie.New([]string{"test-secret-key-exactly-32-char!"})
	require.NoError(t, err)

	store := session.NewMemoryStore[testData]()
	manager := session.NewManager[testData](store, opts...)

	return fixture{
		store:     store,
		manager:   manager,
		cookies:   cookies,
		transport: sessiontransport.NewCookieFromConfig(sessiontransport.DefaultCookieConfig(), manager, cookies),
	}
}

func newContext(w http.ResponseWriter, r *http.Request) *router.Context {
	return router.NewContext(w, r, nil)
}

// requestWithCookies copies Set-Cookie headers from w into a new request.
func requestWithCookies(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestCookieLoad(t *testing.T) {
	t.Parallel()

	t.Run("no cookie creates anonymous session", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("User-Agent", "test-agent")
		r.Header.Set("X-Forwarded-For", "203.0.113.7")

		sess, err := f.transport.Load(newContext(httptest.NewRecorder(), r))
		require.NoError(t, err)
		assert.False(t, sess.IsZero())
		assert.True(t, sess.IsModified())
		assert.Equal(t, "203.0.113.7", sess.IP)
		assert.Equal(t, "test-agent", sess.UserAgent)
	})

	t.Run("stored session round trips through cookie", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		w := httptest.NewRecorder()
		ctx := newContext(w, httptest.NewRequest(http.MethodGet, "/", nil))

		sess, err := f.transport.Load(ctx)
		require.NoError(t, err)
		sess.SetData(testData{Theme: "dark"})
		require.NoError(t, f.transport.Store(ctx, sess))

		loaded, err := f.transport.Load(newContext(httptest.NewRecorder(), requestWithCookies(w)))
		require.NoError(t, err)
		assert.Equal(t, sess.ID, loaded.ID)
		assert.Equal(t, "dark", loaded.Data.Theme)
		assert.False(t, loaded.IsModified())
	})

	t.Run("tampered cookie creates new session", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: cookieName, Value: "dG9rZW4=|bad"})

		sess, err := f.transport.Load(newContext(httptest.NewRecorder(), r))
		require.NoError(t, err)
		assert.True(t, sess.IsModified())
		assert.Zero(t, f.store.Len())
	})

	t.Run("unknown token creates new session", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		w := httptest.NewRecorder()
		require.NoError(t, f.cookies.SetSigned(w, cookieName, "unknown-token"))

		sess, err := f.transport.Load(newContext(httptest.NewRecorder(), requestWithCookies(w)))
		require.NoError(t, err)
		assert.NotEqual(t, "unknown-token", sess.Token)
	})

	t.Run("expired session creates new session", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		expired, err := session.New[testData](session.NewSessionParams{IP: "1.1.1.1"}, -time.Minute)
		require.NoError(t, err)
		require.NoError(t, f.store.Save(t.Context(), &expired))

		w := httptest.NewRecorder()
		require.NoError(t, f.cookies.SetSigned(w, cookieName, expired.Token))

		sess, err := f.transport.Load(newContext(httptest.NewRecorder(), requestWithCookies(w)))
		require.NoError(t, err)
		assert.NotEqual(t, expired.ID, sess.ID)
	})
}

func TestCookieStore(t *testing.T) {
	t.Parallel()

	t.Run("sets signed cookie with max age", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, session.WithTTL(time.Hour))
		w := httptest.NewRecorder()
		ctx := newContext(w, httptest.NewRequest(http.MethodGet, "/", nil))

		sess, err := f.transport.Load(ctx)
		require.NoError(t, err)
		require.NoError(t, f.transport.Store(ctx, sess))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, cookieName, cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
		assert.InDelta(t, 3600, cookies[0].MaxAge, 2)
		assert.Equal(t, 1, f.store.Len())
	})

	t.Run("invalidated session clears cookie", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		w := httptest.NewRecorder()
		ctx := newContext(w, httptest.NewRequest(http.MethodGet, "/", nil))

		sess, err := f.transport.Load(ctx)
		require.NoError(t, err)
		require.NoError(t, f.transport.Store(ctx, sess))

		sess.Invalidate()
		w2 := httptest.NewRecorder()
		require.NoError(t, f.transport.Store(newContext(w2, httptest.NewRequest(http.MethodGet, "/", nil)), sess))

		cookies := w2.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, -1, cookies[0].MaxAge)
		assert.Zero(t, f.store.Len())
	})

	t.Run("save refuses expired session", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		expired, err := session.New[testData](session.NewSessionParams{IP: "1.1.1.1"}, -time.Minute)
		require.NoError(t, err)

		err = f.transport.Save(newContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)), expired)
		assert.ErrorIs(t, err, sessiontransport.ErrExpiredSession)
	})
}

func TestCookieDelete(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	w := httptest.NewRecorder()
	ctx := newContext(w, httptest.NewRequest(http.MethodGet, "/", nil))

	sess, err := f.transport.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, f.transport.Store(ctx, sess))
	require.Equal(t, 1, f.store.Len())

	w2 := httptest.NewRecorder()
	require.NoError(t, f.transport.Delete(newContext(w2, requestWithCookies(w))))

	assert.Zero(t, f.store.Len())
	assert.Equal(t, -1, w2.Result().Cookies()[0].MaxAge)
}
