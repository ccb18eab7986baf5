package csrf

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/product_catalog/internal/apperr"
)

func run(t *testing.T, cfg Config, method string, prep func(*http.Request)) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, "http://api.local/api/cart", nil)
	if prep != nil {
		prep(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := Middleware(cfg)(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)
	return rec, err
}

func TestCSRF_SafeMethodIssuesToken(t *testing.T) {
	t.Parallel()

	rec, err := run(t, Config{}, http.MethodGet, nil)
	require.NoError(t, err)

	token := rec.Header().Get("X-CSRF-Token")
	require.NotEmpty(t, token)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, token, cookies[0].Value)
	assert.False(t, cookies[0].HttpOnly)
}

func TestCSRF_UnsafeMethod(t *testing.T) {
	t.Parallel()

	cookie := &http.Cookie{Name: "XSRF-TOKEN", Value: "tok123"}

	tests := []struct {
		name    string
		cfg     Config
		prep    func(*http.Request)
		wantErr bool
	}{
		{
			name: "matching header",
			prep: func(r *http.Request) {
				r.AddCookie(cookie)
				r.Header.Set("X-CSRF-Token", "tok123")
			},
		},
		{
			name:    "missing header",
			prep:    func(r *http.Request) { r.AddCookie(cookie) },
			wantErr: true,
		},
		{
			name: "wrong header",
			prep: func(r *http.Request) {
				r.AddCookie(cookie)
				r.Header.Set("X-CSRF-Token", "tok999")
			},
			wantErr: true,
		},
		{
			name: "allowed origin",
			cfg:  Config{AllowedOrigins: []string{"http://localhost:5173"}},
			prep: func(r *http.Request) {
				r.AddCookie(cookie)
				r.Header.Set("X-CSRF-Token", "tok123")
				r.Header.Set("Origin", "http://localhost:5173")
			},
		},
		{
			name: "foreign origin",
			cfg:  Config{AllowedOrigins: []string{"http://localhost:5173"}},
			prep: func(r *http.Request) {
				r.AddCookie(cookie)
				r.Header.Set("X-CSRF-Token", "tok123")
				r.Header.Set("Origin", "http://evil.example")
			},
			wantErr: true,
		},
		{
			name: "skipped path",
			cfg:  Config{SkipPaths: []string{"/api/cart"}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := run(t, tc.cfg, http.MethodPost, tc.prep)
			if tc.wantErr {
				require.ErrorIs(t, err, apperr.ErrForbidden)
				return
			}
			require.NoError(t, err)
		})
	}
}
