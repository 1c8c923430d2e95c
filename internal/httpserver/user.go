package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/moviehub/internal/logging"
	authmw "github.com/Skotchmaster/moviehub/internal/middleware/auth"
	"github.com/Skotchmaster/moviehub/internal/service"
	"github.com/Skotchmaster/moviehub/internal/transport"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) Me(c echo.Context) error {
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return err
	}
	profile, err := h.Svc.Me(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *UserHTTP) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.change_password")

	user, err := authmw.CurrentUser(c)
	if err != nil {
		return err
	}
	var req transport.ChangePasswordRequest
	if err := bind(c, &req); err != nil {
		l.Warn("change_password_error", "status", 400, "reason", "invalid body", "error", err)
		return err
	}
	if err := h.Svc.ChangePassword(ctx, user, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}

	l.Info("change_password_success")
	return c.JSON(http.StatusOK, transport.Message{Message: "Password updated"})
}

func (h *UserHTTP) DeleteMe(c echo.Context) error {
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteMe(c.Request().Context(), user); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.Message{Message: "Deleted"})
}

func (h *UserHTTP) ListUsers(c echo.Context) error {
	users, err := h.Svc.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHTTP) Stats(c echo.Context) error {
	stats, err := h.Svc.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *UserHTTP) AllLists(c echo.Context) error {
	lists, err := h.Svc.AllLists(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lists)
}

func (h *UserHTTP) UpdateRole(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update_role")

	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}
	var req transport.UpdateRoleRequest
	if err := bind(c, &req); err != nil {
		l.Warn("update_role_error", "status", 400, "reason", "invalid body", "error", err)
		return err
	}
	if err := h.Svc.UpdateRole(ctx, id, req.Role); err != nil {
		return err
	}

	l.Info("update_role_success", "target_id", id, "role", req.Role)
	return c.JSON(http.StatusOK, transport.Message{Message: "Role updated"})
}
