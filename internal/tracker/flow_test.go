package tracker_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/pagevisits/core/cookie"
	"github.com/dmitrymomot/pagevisits/core/router"
	"github.com/dmitrymomot/pagevisits/core/session"
	"github.com/dmitrymomot/pagevisits/core/sessiontransport"
	"github.com/dmitrymomot/pagevisits/internal/tracker"
	"github.com/dmitrymomot/pagevisits/middleware"
)

const testCookieSecret = "test-secret-key-exactly-32-char!"

// newTestServer wires the visit handler behind the same middleware stack the
// binary uses, backed by an in-memory session store.
func newTestServer(t *testing.T) (*httptest.Server, *session.MemoryStore[tracker.SessionData]) {
	t.Helper()

	store := session.NewMemoryStore[tracker.SessionData]()
	manager := session.NewManager(store)
	cookies, err := cookie.New([]string{testCookieSecret})
	require.NoError(t, err)
	transport := sessiontransport.NewCookieFromConfig(sessiontransport.DefaultCookieConfig(), manager, cookies)

	h := newTestHandler(t)

	r := router.New[*router.Context]()
	r.Use(
		middleware.ClientIP[*router.Context](),
		middleware.Session[*router.Context, tracker.SessionData](transport),
	)
	r.Method("/", tracker.VisitHandler[*router.Context](h), http.MethodGet, http.MethodPost)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, store
}

func newClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func fetchPage(t *testing.T, client *http.Client, method, url string) tracker.Page {
	t.Helper()

	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page tracker.Page
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	return page
}

func TestVisitFlow(t *testing.T) {
	t.Parallel()

	t.Run("counts visits within a session", func(t *testing.T) {
		t.Parallel()

		srv, store := newTestServer(t)
		client := newClient(t)

		first := fetchPage(t, client, http.MethodGet, srv.URL)
		assert.Equal(t, 1, first.Visits)
		assert.True(t, first.LastAccessedAt.Equal(first.CreatedAt))

		prev := first
		for i := 2; i <= 5; i++ {
			page := fetchPage(t, client, http.MethodGet, srv.URL)
			assert.Equal(t, i, page.Visits)
			assert.Equal(t, first.SessionID, page.SessionID)
			assert.True(t, page.CreatedAt.Equal(first.CreatedAt))
			assert.False(t, page.LastAccessedAt.Before(prev.LastAccessedAt))
			prev = page
		}

		assert.Equal(t, 1, store.Len())
	})

	t.Run("post counts like get", func(t *testing.T) {
		t.Parallel()

		srv, _ := newTestServer(t)
		client := newClient(t)

		assert.Equal(t, 1, fetchPage(t, client, http.MethodGet, srv.URL).Visits)
		assert.Equal(t, 2, fetchPage(t, client, http.MethodPost, srv.URL).Visits)
		assert.Equal(t, 3, fetchPage(t, client, http.MethodGet, srv.URL).Visits)
	})

	t.Run("sessions are independent", func(t *testing.T) {
		t.Parallel()

		srv, store := newTestServer(t)
		alice := newClient(t)
		bob := newClient(t)

		fetchPage(t, alice, http.MethodGet, srv.URL)
		fetchPage(t, alice, http.MethodGet, srv.URL)
		a := fetchPage(t, alice, http.MethodGet, srv.URL)
		b := fetchPage(t, bob, http.MethodGet, srv.URL)

		assert.Equal(t, 3, a.Visits)
		assert.Equal(t, 1, b.Visits)
		assert.NotEqual(t, a.SessionID, b.SessionID)
		assert.Equal(t, 2, store.Len())
	})

	t.Run("client without cookies starts over", func(t *testing.T) {
		t.Parallel()

		srv, _ := newTestServer(t)

		assert.Equal(t, 1, fetchPage(t, http.DefaultClient, http.MethodGet, srv.URL).Visits)
		assert.Equal(t, 1, fetchPage(t, http.DefaultClient, http.MethodGet, srv.URL).Visits)
	})

	t.Run("tampered cookie starts a new session", func(t *testing.T) {
		t.Parallel()

		srv, _ := newTestServer(t)

		req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
		require.NoError(t, err)
		req.Header.Set("Accept", "application/json")
		req.AddCookie(&http.Cookie{Name: sessiontransport.DefaultCookieConfig().CookieName, Value: "Zm9v|YmFy"})

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		var page tracker.Page
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
		assert.Equal(t, 1, page.Visits)
	})

	t.Run("session cookie is http only", func(t *testing.T) {
		t.Parallel()

		srv, _ := newTestServer(t)

		resp, err := http.Get(srv.URL)
		require.NoError(t, err)
		defer resp.Body.Close()

		cookies := resp.Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, sessiontransport.DefaultCookieConfig().CookieName, cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
		assert.Positive(t, cookies[0].MaxAge)
	})

	t.Run("html by default", func(t *testing.T) {
		t.Parallel()

		srv, _ := newTestServer(t)

		resp, err := http.Get(srv.URL)
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
		assert.Contains(t, string(body), "Number of Visits = <font size='14'>1</font>")
		assert.Contains(t, string(body), "Your IP Address = 127.0.0.1<br>")
	})

	t.Run("other methods are rejected", func(t *testing.T) {
		t.Parallel()

		srv, store := newTestServer(t)

		req, err := http.NewRequest(http.MethodDelete, srv.URL, nil)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.True(t, strings.Contains(resp.Header.Get("Allow"), http.MethodGet))
		assert.Equal(t, 0, store.Len())
	})
}

func TestVisitFlow_ConcurrentRequests(t *testing.T) {
	t.Parallel()

	const n = 20

	srv, _ := newTestServer(t)
	client := newClient(t)

	require.Equal(t, 1, fetchPage(t, client, http.MethodGet, srv.URL).Visits)

	var g errgroup.Group
	for range n {
		g.Go(func() error {
			req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
			if err != nil {
				return err
			}
			resp, err := client.Do(req)
			if err != nil {
				return err
			}
			_, err = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return err
		})
	}
	require.NoError(t, g.Wait())

	// Concurrent requests of one session may overwrite each other's
	// increment; the count never goes backwards or exceeds the request count.
	final := fetchPage(t, client, http.MethodGet, srv.URL)
	assert.GreaterOrEqual(t, final.Visits, 3)
	assert.LessOrEqual(t, final.Visits, n+2)
}
