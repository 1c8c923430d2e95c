package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/moviehub/internal/logging"
	authmw "github.com/Skotchmaster/moviehub/internal/middleware/auth"
	"github.com/Skotchmaster/moviehub/internal/service"
	"github.com/Skotchmaster/moviehub/internal/transport"
)

type ReviewHTTP struct {
	Svc *service.ReviewService
}

func (h *ReviewHTTP) CreateReview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.create")

	user, err := authmw.CurrentUser(c)
	if err != nil {
		return err
	}
	movieID, err := paramInt64(c, "id")
	if err != nil {
		return err
	}
	var req transport.CreateReviewRequest
	if err := bind(c, &req); err != nil {
		l.Warn("review_create_error", "status", 400, "reason", "invalid body", "error", err)
		return err
	}

	rv, err := h.Svc.Create(ctx, user, movieID, req.Content, req.ScoreOrDefault())
	if err != nil {
		return err
	}
	l.Info("review_create_success", "review_id", rv.ID)
	return c.JSON(http.StatusCreated, rv)
}

func (h *ReviewHTTP) AllReviews(c echo.Context) error {
	items, err := h.Svc.All(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ReviewHTTP) RecentReviews(c echo.Context) error {
	items, err := h.Svc.Recent(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ReviewHTTP) MovieReviews(c echo.Context) error {
	movieID, err := paramInt64(c, "id")
	if err != nil {
		return err
	}
	items, err := h.Svc.ForMovie(c.Request().Context(), movieID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ReviewHTTP) GetReview(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}
	rv, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rv)
}

func (h *ReviewHTTP) UpdateReview(c echo.Context) error {
	ctx := c.Request().Context()
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}
	var req transport.UpdateReviewRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	rv, err := h.Svc.Update(ctx, user, id, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rv)
}

func (h *ReviewHTTP) DeleteReview(c echo.Context) error {
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
