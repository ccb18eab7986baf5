package httpserver

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/product_catalog/internal/export"
	"github.com/Skotchmaster/product_catalog/internal/logging"
	"github.com/Skotchmaster/product_catalog/internal/service"
)

type AdminHTTP struct {
	Svc *service.AdminService
}

func (h *AdminHTTP) Users(c echo.Context) error {
	users, err := h.Svc.Users(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (h *AdminHTTP) Stats(c echo.Context) error {
	stats, err := h.Svc.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// ExportProducts buffers the workbook so a failure can still be reported as JSON.
func (h *AdminHTTP) ExportProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.export_products")

	var buf bytes.Buffer
	if err := h.Svc.ExportProducts(ctx, &buf); err != nil {
		return err
	}

	name := fmt.Sprintf("products-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))

	l.Info("export_products_success", "bytes", buf.Len())
	return c.Blob(http.StatusOK, export.ContentType, buf.Bytes())
}
