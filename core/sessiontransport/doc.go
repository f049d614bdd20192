// Package sessiontransport carries session tokens over HTTP.
//
// Cookie stores Session.Token in a signed cookie managed by core/cookie and
// resolves it back through a session.Manager. Loading never fails the request
// for client-side problems: a missing, tampered, unknown or expired token
// yields a fresh anonymous session populated with the client IP (via
// pkg/clientip) and User-Agent.
//
// Example usage:
//
//	store := session.NewMemoryStore[Data]()
//	sessMgr := session.NewManager[Data](store)
//	cookieMgr, _ := cookie.New([]string{secret})
//	transport := sessiontransport.NewCookie(sessMgr, cookieMgr, "__session")
//
//	r.Use(middleware.Session[*router.Context, Data](transport))
//
// Store hands the session to Manager.Store and then refreshes the cookie so
// its MaxAge follows the server-side expiry. Invalidated sessions have their
// cookie deleted instead.
package sessiontransport
