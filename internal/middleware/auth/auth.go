// Package auth resolves the session cookie and guards routes.
package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/product_catalog/internal/apperr"
	"github.com/Skotchmaster/product_catalog/internal/logging"
	"github.com/Skotchmaster/product_catalog/internal/session"
)

const CookieName = "sessionId"

const (
	ctxSession = "session"
	ctxUserID  = "user_id"
	ctxIsAdmin = "is_admin"
)

const (
	msgAuthRequired  = "Authentication required"
	msgAdminRequired = "Admin access required"
)

type Middleware struct {
	Sessions     *session.Manager
	Codec        *session.CookieCodec
	CookieSecure bool
}

func New(sessions *session.Manager, codec *session.CookieCodec, secure bool) *Middleware {
	return &Middleware{Sessions: sessions, Codec: codec, CookieSecure: secure}
}

func (m *Middleware) SetCookie(c echo.Context, s *session.Session) error {
	value, err := m.Codec.Encode(s)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  s.ExpiresAt,
		MaxAge:   int(m.Sessions.TTL().Seconds()),
		HttpOnly: true,
		Secure:   m.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (m *Middleware) ClearCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Token returns the session token carried by the request cookie, or "".
func (m *Middleware) Token(c echo.Context) string {
	ck, err := c.Cookie(CookieName)
	if err != nil || ck.Value == "" {
		return ""
	}
	token, err := m.Codec.Decode(ck.Value)
	if err != nil {
		return ""
	}
	return token
}

// Resolve loads the request session. It returns session.ErrNotFound when
// the request carries no valid session.
func (m *Middleware) Resolve(c echo.Context) (*session.Session, error) {
	if s, ok := SessionFrom(c); ok {
		return s, nil
	}
	token := m.Token(c)
	if token == "" {
		return nil, session.ErrNotFound
	}
	s, err := m.Sessions.Lookup(c.Request().Context(), token)
	if err != nil {
		return nil, err
	}
	setUserContext(c, s)
	return s, nil
}

func (m *Middleware) authenticate(c echo.Context) error {
	ctx := c.Request().Context()

	s, err := m.Resolve(c)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			if _, cerr := c.Cookie(CookieName); cerr == nil {
				m.ClearCookie(c)
			}
			return apperr.Unauthorized(msgAuthRequired)
		}
		logging.FromContext(ctx).Error("session_lookup_failed", "error", err)
		return apperr.Internal(err)
	}

	refreshed, err := m.Sessions.Refresh(ctx, s)
	switch {
	case errors.Is(err, session.ErrNotFound):
		m.ClearCookie(c)
		return apperr.Unauthorized(msgAuthRequired)
	case err != nil:
		logging.FromContext(ctx).Warn("session_refresh_failed", "error", err)
	case refreshed:
		if err := m.SetCookie(c, s); err != nil {
			logging.FromContext(ctx).Warn("session_cookie_failed", "error", err)
		}
	}
	return nil
}

func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := m.authenticate(c); err != nil {
			return err
		}
		return next(c)
	}
}

// RequireAdmin trusts the is_admin flag captured when the session was issued.
func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := m.authenticate(c); err != nil {
			return err
		}
		if !IsAdmin(c) {
			return apperr.Forbidden(msgAdminRequired)
		}
		return next(c)
	}
}

func setUserContext(c echo.Context, s *session.Session) {
	c.Set(ctxSession, s)
	c.Set(ctxUserID, s.UserID)
	c.Set(ctxIsAdmin, s.IsAdmin)
}

func SessionFrom(c echo.Context) (*session.Session, bool) {
	s, ok := c.Get(ctxSession).(*session.Session)
	return s, ok && s != nil
}

func UserID(c echo.Context) uint {
	id, _ := c.Get(ctxUserID).(uint)
	return id
}

func IsAdmin(c echo.Context) bool {
	admin, _ := c.Get(ctxIsAdmin).(bool)
	return admin
}
