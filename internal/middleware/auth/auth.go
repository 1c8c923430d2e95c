package auth

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/moviehub/internal/access"
	"github.com/Skotchmaster/moviehub/internal/apperr"
	"github.com/Skotchmaster/moviehub/internal/logging"
	"github.com/Skotchmaster/moviehub/internal/models"
)

const userKey = "user"

type IdentityResolver interface {
	Resolve(ctx context.Context, raw string) (*models.User, error)
}

type Middleware struct {
	Resolver IdentityResolver
}

func New(r IdentityResolver) *Middleware {
	return &Middleware{Resolver: r}
}

// ValidatorFunc runs after the user is resolved and may reject the request.
type ValidatorFunc func(user *models.User) error

func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, nil)
}

func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, func(user *models.User) error {
		_, err := access.RequireAdmin(user)
		return err
	})
}

func (m *Middleware) requireAuthWithValidator(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user, err := m.Resolver.Resolve(ctx, BearerToken(c))
		if err != nil {
			logging.FromContext(ctx).Warn("auth_rejected", "reason", err.Error())
			return err
		}
		if validator != nil {
			if err := validator(user); err != nil {
				logging.FromContext(ctx).Warn("auth_forbidden", "user_id", user.ID, "role", user.Role)
				return err
			}
		}

		c.Set(userKey, user)
		l := logging.FromContext(ctx).With("user_id", user.ID)
		c.SetRequest(c.Request().WithContext(logging.IntoContext(ctx, l)))
		return next(c)
	}
}

// BearerToken extracts the token from "Authorization: Bearer <token>". The
// scheme is matched case-insensitively; anything else yields "".
func BearerToken(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(strings.TrimSpace(h), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// CurrentUser returns the user stored by RequireAuth. Handlers behind the
// middleware can rely on it being set.
func CurrentUser(c echo.Context) (*models.User, error) {
	u, ok := c.Get(userKey).(*models.User)
	if !ok || u == nil {
		return nil, apperr.Unauthorized("Not authenticated")
	}
	return u, nil
}
