package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/product_catalog/internal/apperr"
	"github.com/Skotchmaster/product_catalog/internal/logging"
	"github.com/Skotchmaster/product_catalog/internal/service"
	"github.com/Skotchmaster/product_catalog/internal/transport"
	"github.com/Skotchmaster/product_catalog/internal/util"
)

const headerTotalCount = "X-Total-Count"

type ProductHTTP struct {
	Svc *service.CatalogService
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.Validation(`"id" must be a positive integer`)
	}
	return uint(id), nil
}

func productFilter(c echo.Context) (transport.ProductFilter, error) {
	f := transport.ProductFilter{
		Search:   c.QueryParam("search"),
		License:  c.QueryParam("license"),
		Category: c.QueryParam("category"),
	}

	if raw := c.QueryParam("rating"); raw != "" {
		r, err := strconv.Atoi(raw)
		if err != nil {
			return f, apperr.Validation(`"rating" must be a number`)
		}
		f.Rating = &r
	}

	q := c.QueryParams()
	if raw := q.Get("featured"); raw != "" {
		featured := raw == "true"
		f.Featured = &featured
	}

	if q.Has("page") || q.Has("size") {
		page := util.ParseIntDefault(q.Get("page"), 1)
		size := util.ParseIntDefault(q.Get("size"), util.DefaultPageSize)
		f.Offset, f.Limit = util.Calculate(page, size)
	}
	return f, nil
}

func (h *ProductHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	f, err := productFilter(c)
	if err != nil {
		l.Warn("list_products_error", "status", 400, "reason", "invalid filter", "error", err)
		return err
	}

	items, total, err := h.Svc.List(ctx, f)
	if err != nil {
		return err
	}

	c.Response().Header().Set(headerTotalCount, strconv.FormatInt(total, 10))
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	q := c.QueryParam("q")
	if q == "" {
		l.Warn("search_products_error", "status", 400, "reason", "empty query")
		return apperr.Validation(`"q" is required`)
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.Search(ctx, q, offset, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.SearchResponse{Total: total, Products: items})
}

func (h *ProductHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_product_error", "status", 400, "reason", "invalid id", "id", c.Param("id"))
		return err
	}

	p, err := h.Svc.Get(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "reason", "invalid body", "error", err)
		return bindError(err)
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "reason", "validation failed", "error", err)
		return err
	}

	p, err := h.Svc.Create(ctx, req)
	if err != nil {
		return err
	}

	l.Info("create_product_success", "product_id", p.ID)
	return c.JSON(http.StatusCreated, p)
}

func (h *ProductHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	id, err := parseID(c)
	if err != nil {
		l.Warn("update_product_error", "status", 400, "reason", "invalid id", "id", c.Param("id"))
		return err
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_product_error", "status", 400, "reason", "invalid body", "error", err)
		return bindError(err)
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("update_product_error", "status", 400, "reason", "validation failed", "error", err)
		return err
	}

	p, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return err
	}

	l.Info("update_product_success", "product_id", p.ID)
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := parseID(c)
	if err != nil {
		l.Warn("delete_product_error", "status", 400, "reason", "invalid id", "id", c.Param("id"))
		return err
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		return err
	}

	l.Info("delete_product_success", "product_id", id)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Product deleted successfully"})
}
