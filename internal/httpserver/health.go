package httpserver

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/product_catalog/internal/logging"
)

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

type HealthHTTP struct {
	Checks  map[string]Check
	Timeout time.Duration
}

func (h *HealthHTTP) API(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "OK",
		"message": "Product Catalog API is running",
	})
}

func (h *HealthHTTP) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthHTTP) Ready(c echo.Context) error {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
	defer cancel()

	names := make([]string, 0, len(h.Checks))
	for name := range h.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := h.Checks[name](ctx); err != nil {
			logging.FromContext(ctx).Warn("readiness_failed", "status", 503, "dependency", name, "error", err)
			return c.JSON(http.StatusServiceUnavailable, errorBody{Error: name + " unavailable"})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
