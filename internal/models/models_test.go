package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"USER", RoleUser, true},
		{"admin", RoleAdmin, true},
		{"ROLE_ADMIN", RoleAdmin, true},
		{" role_user ", RoleUser, true},
		{"", "", false},
		{"SUPERUSER", "", false},
		{"ROLE_", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseRole(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestOwnerID(t *testing.T) {
	assert.Equal(t, uint(7), Review{UserID: 7}.OwnerID())
	assert.Equal(t, uint(9), PersonalList{UserID: 9}.OwnerID())
}
