// Package access holds the role and ownership predicates every mutating
// operation is gated on. They are pure functions of the acting user and the
// role or resource in question.
package access

import (
	"github.com/Skotchmaster/moviehub/internal/apperr"
	"github.com/Skotchmaster/moviehub/internal/models"
)

// Owned is implemented by resources that belong to exactly one user.
type Owned interface {
	OwnerID() uint
}

func RequireRole(user *models.User, role models.Role) (*models.User, error) {
	if user == nil || !role.Valid() || user.Role != role {
		return nil, apperr.Forbidden(forbiddenRole(role))
	}
	return user, nil
}

func RequireAdmin(user *models.User) (*models.User, error) {
	return RequireRole(user, models.RoleAdmin)
}

func RequireOwnership(user *models.User, resource Owned) error {
	if user == nil || resource == nil || user.ID == 0 || resource.OwnerID() != user.ID {
		return apperr.Forbidden("Not the owner of this resource")
	}
	return nil
}

func forbiddenRole(role models.Role) string {
	if role == models.RoleAdmin {
		return "Admin access required"
	}
	return "Insufficient role"
}
