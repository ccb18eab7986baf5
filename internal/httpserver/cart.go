package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/product_catalog/internal/logging"
	authmw "github.com/Skotchmaster/product_catalog/internal/middleware/auth"
	"github.com/Skotchmaster/product_catalog/internal/service"
	"github.com/Skotchmaster/product_catalog/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) Get(c echo.Context) error {
	items, err := h.Svc.Get(c.Request().Context(), authmw.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CartHTTP) Summary(c echo.Context) error {
	sum, err := h.Svc.Summary(c.Request().Context(), authmw.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sum)
}

func (h *CartHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "reason", "invalid body", "error", err)
		return bindError(err)
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "reason", "validation failed", "error", err)
		return err
	}

	item, created, err := h.Svc.Add(ctx, authmw.UserID(c), req)
	if err != nil {
		return err
	}

	if created {
		return c.JSON(http.StatusCreated, transport.AddToCartResponse{
			Message:    "Item added to cart successfully",
			CartItemID: item.ID,
			Quantity:   item.Quantity,
		})
	}
	return c.JSON(http.StatusOK, transport.AddToCartResponse{
		Message:  "Cart updated successfully",
		Quantity: item.Quantity,
	})
}

func (h *CartHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	id, err := parseID(c)
	if err != nil {
		l.Warn("update_cart_error", "status", 400, "reason", "invalid id", "id", c.Param("id"))
		return err
	}

	var req transport.UpdateCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_error", "status", 400, "reason", "invalid body", "error", err)
		return bindError(err)
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("update_cart_error", "status", 400, "reason", "validation failed", "error", err)
		return err
	}

	if err := h.Svc.Update(ctx, authmw.UserID(c), id, req.Quantity); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Cart item updated successfully"})
}

func (h *CartHTTP) Remove(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	id, err := parseID(c)
	if err != nil {
		l.Warn("remove_cart_error", "status", 400, "reason", "invalid id", "id", c.Param("id"))
		return err
	}

	if err := h.Svc.Remove(ctx, authmw.UserID(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Item removed from cart successfully"})
}

func (h *CartHTTP) Clear(c echo.Context) error {
	if err := h.Svc.Clear(c.Request().Context(), authmw.UserID(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Cart cleared successfully"})
}
