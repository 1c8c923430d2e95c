package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/moviehub/internal/apperr"
	"github.com/Skotchmaster/moviehub/internal/models"
	"github.com/Skotchmaster/moviehub/internal/tokens"
)

// UserFinder loads users by email. Implementations return an error matching
// apperr.ErrNotFound when no user exists.
type UserFinder interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type TokenValidator interface {
	Validate(raw string) (*tokens.AccessClaims, error)
}

type Resolver struct {
	Tokens TokenValidator
	Users  UserFinder
}

func NewResolver(t TokenValidator, users UserFinder) *Resolver {
	return &Resolver{Tokens: t, Users: users}
}

// Resolve turns a bearer token into the persisted user it names. Tokens for
// deleted users, and tokens minted before the user's last version bump, are
// rejected as unauthorized even though their signature is still good.
func (r *Resolver) Resolve(ctx context.Context, raw string) (*models.User, error) {
	if raw == "" {
		return nil, apperr.Unauthorized("Not authenticated")
	}

	claims, err := r.Tokens.Validate(raw)
	if err != nil {
		if errors.Is(err, tokens.ErrTokenExpired) {
			return nil, apperr.Wrap(apperr.ErrUnauthorized, "Token expired", err)
		}
		return nil, apperr.Wrap(apperr.ErrUnauthorized, "Invalid token", err)
	}
	if claims.Subject == "" {
		return nil, apperr.Unauthorized("Invalid token")
	}

	user, err := r.Users.FindUserByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Unauthorized("User not found")
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	if user.TokenVersion != claims.Version {
		return nil, apperr.Unauthorized("Token revoked")
	}
	return user, nil
}
