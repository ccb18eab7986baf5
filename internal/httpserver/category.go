package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/product_catalog/internal/logging"
	"github.com/Skotchmaster/product_catalog/internal/service"
	"github.com/Skotchmaster/product_catalog/internal/transport"
)

type CategoryHTTP struct {
	Svc *service.CategoryService
}

func (h *CategoryHTTP) List(c echo.Context) error {
	cats, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *CategoryHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create")

	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_category_error", "status", 400, "reason", "invalid body", "error", err)
		return bindError(err)
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("create_category_error", "status", 400, "reason", "validation failed", "error", err)
		return err
	}

	cat, err := h.Svc.Create(ctx, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, cat)
}

func (h *CategoryHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.delete")

	id, err := parseID(c)
	if err != nil {
		l.Warn("delete_category_error", "status", 400, "reason", "invalid id", "id", c.Param("id"))
		return err
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Category deleted successfully"})
}
