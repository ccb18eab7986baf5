package httpserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/product_catalog/internal/middleware/csrf"
	loggingmw "github.com/Skotchmaster/product_catalog/internal/middleware/logging"
	"github.com/Skotchmaster/product_catalog/internal/validation"
)

type Options struct {
	Logger       *slog.Logger
	CORSOrigins  []string
	BodyLimit    string
	CSRF         bool
	CookieSecure bool
}

// NewEcho builds the echo instance with the shared middleware chain.
func NewEcho(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = ErrorHandler

	e.Pre(echomw.RemoveTrailingSlash())

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(loggingmw.RequestLogger(opts.Logger))
	e.Use(echomw.Recover())

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "X-CSRF-Token"},
		ExposeHeaders:    []string{"X-Total-Count", echo.HeaderXRequestID},
		AllowCredentials: true,
	}))

	if opts.BodyLimit != "" {
		e.Use(echomw.BodyLimit(opts.BodyLimit))
	}

	if opts.CSRF {
		e.Use(csrf.Middleware(csrf.Config{
			Secure:         opts.CookieSecure,
			AllowedOrigins: trustedOrigins(opts.CORSOrigins),
			SkipPaths:      []string{"/api/auth/login", "/api/auth/register"},
		}))
	}

	return e
}

// trustedOrigins drops the wildcard, which only the CORS layer understands.
func trustedOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o != "*" {
			out = append(out, o)
		}
	}
	return out
}

// NewHTTPServer wraps e with the production timeouts.
func NewHTTPServer(addr string, e *echo.Echo) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
