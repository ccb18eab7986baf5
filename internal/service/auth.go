package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Skotchmaster/product_catalog/internal/apperr"
	"github.com/Skotchmaster/product_catalog/internal/events"
	"github.com/Skotchmaster/product_catalog/internal/hash"
	"github.com/Skotchmaster/product_catalog/internal/logging"
	"github.com/Skotchmaster/product_catalog/internal/models"
	"github.com/Skotchmaster/product_catalog/internal/repo"
	"github.com/Skotchmaster/product_catalog/internal/session"
	"github.com/Skotchmaster/product_catalog/internal/transport"
)

const (
	msgInvalidCredentials = "Invalid email or password"
	msgUserExists         = "User already exists"
	msgUserNotFound       = "User not found"
)

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

var _ UserStore = (*repo.GormRepo)(nil)

type AuthService struct {
	Users            UserStore
	Sessions         *session.Manager
	Events           events.Publisher
	AllowAdminSignup bool
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type userPayload struct {
	UserID  uint   `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, *session.Session, error) {
	email := NormalizeEmail(req.Email)
	l := logging.FromContext(ctx).With("svc", "auth.register", "email", email)

	if _, err := s.Users.GetUserByEmail(ctx, email); err == nil {
		l.Warn("register_error", "status", 409, "reason", "user already exists")
		return nil, nil, apperr.Conflict(msgUserExists)
	} else if !isNotFound(err) {
		return nil, nil, storeError(ctx, "get_user_by_email", err, "")
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, nil, apperr.Internal(err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: pwHash,
		IsAdmin:      s.AllowAdminSignup && req.IsAdmin != nil && *req.IsAdmin,
	}
	if err := s.Users.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			l.Warn("register_error", "status", 409, "reason", "user already exists")
			return nil, nil, apperr.Conflict(msgUserExists)
		}
		return nil, nil, storeError(ctx, "create_user", err, "")
	}

	sess, err := s.Sessions.Issue(ctx, user.ID, user.Email, user.IsAdmin)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot create session", "error", err)
		return nil, nil, apperr.Internal(err)
	}

	events.Emit(ctx, s.Events, events.TopicUsers, fmt.Sprint(user.ID), events.UserRegistered,
		userPayload{UserID: user.ID, Email: user.Email, IsAdmin: user.IsAdmin})
	l.Info("user_registered", "user_id", user.ID)
	return &user, sess, nil
}

func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*models.User, *session.Session, error) {
	email := NormalizeEmail(req.Email)
	l := logging.FromContext(ctx).With("svc", "auth.login", "email", email)

	user, err := s.Users.GetUserByEmail(ctx, email)
	if err != nil {
		if !isNotFound(err) {
			return nil, nil, storeError(ctx, "get_user_by_email", err, "")
		}
		hash.CheckPassword(hash.Dummy(), req.Password)
		l.Warn("login_error", "status", 401, "reason", "unknown email")
		return nil, nil, apperr.Unauthorized(msgInvalidCredentials)
	}
	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login_error", "status", 401, "reason", "wrong password")
		return nil, nil, apperr.Unauthorized(msgInvalidCredentials)
	}

	sess, err := s.Sessions.Issue(ctx, user.ID, user.Email, user.IsAdmin)
	if err != nil {
		l.Error("login_error", "status", 500, "reason", "cannot create session", "error", err)
		return nil, nil, apperr.Internal(err)
	}

	events.Emit(ctx, s.Events, events.TopicUsers, fmt.Sprint(user.ID), events.UserLoggedIn,
		userPayload{UserID: user.ID, Email: user.Email, IsAdmin: user.IsAdmin})
	return user, sess, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.Sessions.Revoke(ctx, token); err != nil {
		logging.FromContext(ctx).Error("logout_error", "status", 500, "error", err)
		return apperr.Internal(err)
	}
	return nil
}

// CurrentUser re-reads the session owner. A session whose user is gone is revoked.
func (s *AuthService) CurrentUser(ctx context.Context, sess *session.Session) (*models.User, error) {
	user, err := s.Users.GetUserByID(ctx, sess.UserID)
	if err != nil {
		if !isNotFound(err) {
			return nil, storeError(ctx, "get_user_by_id", err, "")
		}
		if err := s.Sessions.Revoke(ctx, sess.Token); err != nil {
			logging.FromContext(ctx).Warn("revoke_session_error", "user_id", sess.UserID, "error", err)
		}
		return nil, apperr.Unauthorized(msgUserNotFound)
	}
	return user, nil
}

// EnsureAdmin creates the admin account when no user has that email and
// reports whether it did.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return false, nil
	}
	if _, err := s.Users.GetUserByEmail(ctx, email); err == nil {
		return false, nil
	} else if !isNotFound(err) {
		return false, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return false, err
	}
	admin := models.User{Email: email, PasswordHash: pwHash, IsAdmin: true}
	if err := s.Users.CreateUser(ctx, &admin); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
