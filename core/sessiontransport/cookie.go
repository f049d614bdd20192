package sessiontransport

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrymomot/pagevisits/core/cookie"
	"github.com/dmitrymomot/pagevisits/core/handler"
	"github.com/dmitrymomot/pagevisits/core/session"
	"github.com/dmitrymomot/pagevisits/pkg/clientip"
)

// Cookie provides HTTP cookie-based session transport.
// It stores Session.Token as the cookie value (signed via cookie.Manager).
type Cookie[Data any] struct {
	manager   *session.Manager[Data]
	cookieMgr *cookie.Manager
	name      string
}

// NewCookie creates a new cookie-based session transport.
func NewCookie[Data any](mgr *session.Manager[Data], cookieMgr *cookie.Manager, name string) *Cookie[Data] {
	return &Cookie[Data]{
		manager:   mgr,
		cookieMgr: cookieMgr,
		name:      name,
	}
}

// Load session from cookie. Creates a new anonymous session if the cookie is
// missing, fails verification or refers to an unknown or expired session.
func (c *Cookie[Data]) Load(ctx handler.Context) (session.Session[Data], error) {
	token, err := c.cookieMgr.GetSigned(ctx.Request(), c.name)
	if err != nil {
		return c.newSession(ctx)
	}

	sess, err := c.manager.GetByToken(ctx, token)
	if err != nil {
		return c.newSession(ctx)
	}

	return sess, nil
}

// Store persists the session through the manager and refreshes the cookie.
// An invalidated session has its cookie removed.
func (c *Cookie[Data]) Store(ctx handler.Context, sess session.Session[Data]) error {
	stored, err := c.manager.Store(ctx, sess)
	if err != nil {
		if errors.Is(err, session.ErrInvalidated) {
			c.cookieMgr.Delete(ctx.ResponseWriter(), c.name)
			return nil
		}
		return err
	}

	return c.Save(ctx, stored)
}

// Save writes the session token to a signed cookie whose MaxAge tracks the
// session expiry.
func (c *Cookie[Data]) Save(ctx handler.Context, sess session.Session[Data]) error {
	until := time.Until(sess.ExpiresAt)
	if until <= 0 {
		return fmt.Errorf("%w (expired %v ago)", ErrExpiredSession, -until)
	}

	return c.cookieMgr.SetSigned(ctx.ResponseWriter(), c.name, sess.Token,
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
		cookie.WithMaxAge(int(until.Seconds())),
	)
}

// Delete removes the session from the store and clears the cookie.
func (c *Cookie[Data]) Delete(ctx handler.Context) error {
	token, err := c.cookieMgr.GetSigned(ctx.Request(), c.name)
	if err == nil {
		if sess, err := c.manager.GetByToken(ctx, token); err == nil {
			if err := c.manager.Delete(ctx, sess.ID); err != nil {
				return err
			}
		}
	}

	c.cookieMgr.Delete(ctx.ResponseWriter(), c.name)
	return nil
}

func (c *Cookie[Data]) newSession(ctx handler.Context) (session.Session[Data], error) {
	r := ctx.Request()
	return c.manager.New(ctx, session.NewSessionParams{
		IP:        clientip.GetIP(r),
		UserAgent: r.Header.Get("User-Agent"),
	})
}
