package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/moviehub/internal/logging"
	authmw "github.com/Skotchmaster/moviehub/internal/middleware/auth"
	"github.com/Skotchmaster/moviehub/internal/service"
	"github.com/Skotchmaster/moviehub/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := bind(c, &req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return err
	}

	user, err := h.Svc.Register(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}

	l.Info("register_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, transport.Message{Message: "Registered"})
}

// Login accepts a JSON body or the OAuth2 password form.
func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := bind(c, &req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return err
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}

	l.Info("login_success")
	return c.JSON(http.StatusOK, transport.LoginResponse{
		AccessToken: res.AccessToken,
		TokenType:   "bearer",
		ExpiresAt:   res.ExpiresAt,
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return err
	}
	if err := h.Svc.Logout(ctx, user); err != nil {
		logging.FromContext(ctx).Error("logout_error", "status", 500, "reason", "cannot revoke tokens", "error", err)
		return err
	}
	return c.JSON(http.StatusOK, transport.Message{Message: "Logged out"})
}
