package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/moviehub/internal/logging"
	"github.com/Skotchmaster/moviehub/internal/models"
	"github.com/Skotchmaster/moviehub/internal/service"
	"github.com/Skotchmaster/moviehub/internal/transport"
	"github.com/Skotchmaster/moviehub/internal/util"
)

type MovieHTTP struct {
	Svc *service.MovieService
}

type moviePage struct {
	Data []models.Movie `json:"data"`
	Meta util.PageMeta  `json:"meta"`
}

func (h *MovieHTTP) ListMovies(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "movie.list")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.List(ctx, c.QueryParam("q"), offset, limit)
	if err != nil {
		l.Error("list_movies_error", "status", 500, "reason", "cannot list movies", "error", err)
		return err
	}
	return c.JSON(http.StatusOK, moviePage{Data: items, Meta: util.Meta(page, offset, limit, total)})
}

func (h *MovieHTTP) SearchMovies(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "movie.search")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.Search(ctx, c.QueryParam("q"), offset, limit)
	if err != nil {
		l.Error("search_movies_error", "status", 500, "reason", "cannot search movies", "error", err)
		return err
	}
	return c.JSON(http.StatusOK, moviePage{Data: items, Meta: util.Meta(page, offset, limit, total)})
}

func (h *MovieHTTP) TopRated(c echo.Context) error {
	movies, err := h.Svc.TopRated(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, movies)
}

func (h *MovieHTTP) GetMovie(c echo.Context) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return err
	}
	movie, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, movie)
}

func (h *MovieHTTP) Sync(c echo.Context) error {
	added, err := h.Svc.Sync(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.SyncResult{Status: "synced", Added: added})
}

func (h *MovieHTTP) CreateMovie(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "movie.create")

	var req transport.CreateMovieRequest
	if err := bind(c, &req); err != nil {
		l.Warn("movie_create_error", "status", 400, "reason", "invalid body", "error", err)
		return err
	}
	movie, err := h.Svc.Create(ctx, req)
	if err != nil {
		return err
	}

	l.Info("movie_create_success", "movie_id", movie.ID)
	return c.JSON(http.StatusCreated, movie)
}

func (h *MovieHTTP) UpdateMovie(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := paramInt64(c, "id")
	if err != nil {
		return err
	}
	var req transport.UpdateMovieRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.Svc.UpdateTitle(ctx, id, req.Title); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.Msg{Msg: "updated"})
}

func (h *MovieHTTP) DeleteMovie(c echo.Context) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.Msg{Msg: "deleted"})
}
