package httpserver

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/moviehub/internal/apperr"
	authmw "github.com/Skotchmaster/moviehub/internal/middleware/auth"
	"github.com/Skotchmaster/moviehub/internal/models"
)

type validatable interface {
	Validate() error
}

// bind fills req from the query string and then the body, so clients may
// send simple fields either way, and validates the result.
func bind(c echo.Context, req validatable) error {
	b := &echo.DefaultBinder{}
	if err := b.BindQueryParams(c, req); err != nil {
		return apperr.Validation("invalid query")
	}
	if err := b.BindBody(c, req); err != nil {
		return apperr.Validation("invalid body")
	}
	if err := req.Validate(); err != nil {
		return apperr.Wrap(apperr.ErrValidation, err.Error(), err)
	}
	return nil
}

func paramUint(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, apperr.Validation(name + " must be a positive integer")
	}
	return uint(v), nil
}

func paramInt64(c echo.Context, name string) (int64, error) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperr.Validation(name + " must be an integer")
	}
	return v, nil
}

func listMovieParams(c echo.Context) (*models.User, uint, int64, error) {
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return nil, 0, 0, err
	}
	listID, err := paramUint(c, "id")
	if err != nil {
		return nil, 0, 0, err
	}
	movieID, err := paramInt64(c, "movie_id")
	if err != nil {
		return nil, 0, 0, err
	}
	return user, listID, movieID, nil
}
