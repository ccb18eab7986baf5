package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/product_catalog/internal/apperr"
	"github.com/Skotchmaster/product_catalog/internal/session"
)

func newMiddleware(t *testing.T, key []byte) *Middleware {
	t.Helper()
	return New(session.NewManager(session.NewMemoryStore(), time.Hour), session.NewCookieCodec(key), false)
}

func newContext(cookie *http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func issueCookie(t *testing.T, m *Middleware, isAdmin bool) (*http.Cookie, *session.Session) {
	t.Helper()

	s, err := m.Sessions.Issue(context.Background(), 42, "u@example.com", isAdmin)
	require.NoError(t, err)

	c, rec := newContext(nil)
	require.NoError(t, m.SetCookie(c, s))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0], s
}

func ok(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestSetCookie_Attributes(t *testing.T) {
	t.Parallel()

	m := newMiddleware(t, nil)
	ck, s := issueCookie(t, m, false)

	assert.Equal(t, CookieName, ck.Name)
	assert.Equal(t, s.Token, ck.Value)
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
	assert.Equal(t, "/", ck.Path)
	assert.Equal(t, 3600, ck.MaxAge)
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	for _, key := range [][]byte{nil, []byte("signing-key")} {
		m := newMiddleware(t, key)
		ck, _ := issueCookie(t, m, false)

		c, rec := newContext(ck)
		require.NoError(t, m.RequireAuth(ok)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, uint(42), UserID(c))
		assert.False(t, IsAdmin(c))
	}
}

func TestRequireAuth_Missing(t *testing.T) {
	t.Parallel()

	m := newMiddleware(t, nil)
	c, _ := newContext(nil)

	err := m.RequireAuth(ok)(c)
	require.ErrorIs(t, err, apperr.ErrUnauthorized)
	_, msg := apperr.Public(err)
	assert.Equal(t, "Authentication required", msg)
}

func TestRequireAuth_UnknownTokenClearsCookie(t *testing.T) {
	t.Parallel()

	m := newMiddleware(t, nil)
	c, rec := newContext(&http.Cookie{Name: CookieName, Value: "forged"})

	err := m.RequireAuth(ok)(c)
	require.ErrorIs(t, err, apperr.ErrUnauthorized)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestRequireAuth_RevokedSession(t *testing.T) {
	t.Parallel()

	m := newMiddleware(t, nil)
	ck, s := issueCookie(t, m, false)
	require.NoError(t, m.Sessions.Revoke(context.Background(), s.Token))

	c, _ := newContext(ck)
	require.ErrorIs(t, m.RequireAuth(ok)(c), apperr.ErrUnauthorized)
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	m := newMiddleware(t, nil)

	userCookie, _ := issueCookie(t, m, false)
	c, _ := newContext(userCookie)
	err := m.RequireAdmin(ok)(c)
	require.ErrorIs(t, err, apperr.ErrForbidden)
	_, msg := apperr.Public(err)
	assert.Equal(t, "Admin access required", msg)

	adminCookie, _ := issueCookie(t, m, true)
	c, rec := newContext(adminCookie)
	require.NoError(t, m.RequireAdmin(ok)(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, _ = newContext(nil)
	require.ErrorIs(t, m.RequireAdmin(ok)(c), apperr.ErrUnauthorized)
}
