package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/moviehub/internal/logging"
	authmw "github.com/Skotchmaster/moviehub/internal/middleware/auth"
	"github.com/Skotchmaster/moviehub/internal/service"
	"github.com/Skotchmaster/moviehub/internal/transport"
)

type ListHTTP struct {
	Svc *service.ListService
}

func (h *ListHTTP) CreateList(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "list.create")

	user, err := authmw.CurrentUser(c)
	if err != nil {
		return err
	}
	var req transport.ListRequest
	if err := bind(c, &req); err != nil {
		l.Warn("list_create_error", "status", 400, "reason", "invalid body", "error", err)
		return err
	}
	list, err := h.Svc.Create(ctx, user, req.Title, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, list)
}

func (h *ListHTTP) MyLists(c echo.Context) error {
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return err
	}
	lists, err := h.Svc.Mine(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lists)
}

func (h *ListHTTP) GetList(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}
	list, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ListHTTP) UpdateList(c echo.Context) error {
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}
	var req transport.ListRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.Svc.Update(c.Request().Context(), user, id, req.Title, req.Description); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.Msg{Msg: "updated"})
}

func (h *ListHTTP) DeleteList(c echo.Context) error {
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(c.Request().Context(), user, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.Msg{Msg: "deleted"})
}

func (h *ListHTTP) AddMovie(c echo.Context) error {
	user, listID, movieID, err := listMovieParams(c)
	if err != nil {
		return err
	}
	if err := h.Svc.AddMovie(c.Request().Context(), user, listID, movieID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.Status{Status: "added"})
}

func (h *ListHTTP) RemoveMovie(c echo.Context) error {
	user, listID, movieID, err := listMovieParams(c)
	if err != nil {
		return err
	}
	if err := h.Svc.RemoveMovie(c.Request().Context(), user, listID, movieID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.Status{Status: "removed"})
}
