package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/moviehub/internal/apperr"
	"github.com/Skotchmaster/moviehub/internal/models"
)

func TestRequireRole(t *testing.T) {
	admin := &models.User{ID: 1, Role: models.RoleAdmin}

	got, err := RequireRole(admin, models.RoleAdmin)
	require.NoError(t, err)
	assert.Same(t, admin, got)

	got, err = RequireAdmin(admin)
	require.NoError(t, err)
	assert.Same(t, admin, got)

	for _, role := range []models.Role{models.RoleUser, "", "admin", "ROLE_ADMIN", "SUPERUSER"} {
		u := &models.User{ID: 2, Role: role}
		got, err := RequireRole(u, models.RoleAdmin)
		assert.Nil(t, got, string(role))
		assert.ErrorIs(t, err, apperr.ErrForbidden, string(role))
	}

	_, err = RequireRole(nil, models.RoleAdmin)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = RequireRole(&models.User{Role: ""}, "")
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = RequireRole(&models.User{ID: 3, Role: models.RoleUser}, models.RoleUser)
	assert.NoError(t, err)
}

func TestRequireOwnership(t *testing.T) {
	owner := &models.User{ID: 10}
	other := &models.User{ID: 11}
	review := models.Review{ID: 1, UserID: 10}
	list := models.PersonalList{ID: 1, UserID: 10}

	assert.NoError(t, RequireOwnership(owner, review))
	assert.NoError(t, RequireOwnership(owner, list))

	assert.ErrorIs(t, RequireOwnership(other, review), apperr.ErrForbidden)
	assert.ErrorIs(t, RequireOwnership(other, list), apperr.ErrForbidden)
	assert.ErrorIs(t, RequireOwnership(nil, review), apperr.ErrForbidden)
	assert.ErrorIs(t, RequireOwnership(owner, nil), apperr.ErrForbidden)
	assert.ErrorIs(t, RequireOwnership(&models.User{}, models.Review{}), apperr.ErrForbidden)
}
