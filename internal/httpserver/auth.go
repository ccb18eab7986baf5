package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/product_catalog/internal/apperr"
	"github.com/Skotchmaster/product_catalog/internal/logging"
	authmw "github.com/Skotchmaster/product_catalog/internal/middleware/auth"
	"github.com/Skotchmaster/product_catalog/internal/service"
	"github.com/Skotchmaster/product_catalog/internal/session"
	"github.com/Skotchmaster/product_catalog/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
	MW  *authmw.Middleware
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return bindError(err)
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "validation failed", "error", err)
		return err
	}

	user, sess, err := h.Svc.Register(ctx, req)
	if err != nil {
		return err
	}
	if err := h.MW.SetCookie(c, sess); err != nil {
		return apperr.Internal(err)
	}

	l.Info("register_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, transport.AuthResponse{
		User:    transport.NewUserResponse(user),
		Message: "Registration successful",
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return bindError(err)
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "validation failed", "error", err)
		return err
	}

	user, sess, err := h.Svc.Login(ctx, req)
	if err != nil {
		return err
	}
	if err := h.MW.SetCookie(c, sess); err != nil {
		return apperr.Internal(err)
	}

	l.Info("login_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, transport.AuthResponse{
		User:    transport.NewUserResponse(user),
		Message: "Login successful",
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if err := h.Svc.Logout(ctx, h.MW.Token(c)); err != nil {
		l.Error("logout_error", "status", 200, "reason", "session not revoked", "error", err)
	}
	h.MW.ClearCookie(c)

	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Logout successful"})
}

func (h *AuthHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.me")

	sess, err := h.MW.Resolve(c)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			l.Warn("me_error", "status", 401, "reason", "no session")
			if h.MW.Token(c) != "" {
				h.MW.ClearCookie(c)
			}
			return apperr.Unauthorized("Not authenticated")
		}
		return apperr.Internal(err)
	}

	user, err := h.Svc.CurrentUser(ctx, sess)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindUnauthorized {
			h.MW.ClearCookie(c)
		}
		return err
	}

	return c.JSON(http.StatusOK, map[string]transport.UserResponse{"user": transport.NewUserResponse(user)})
}
