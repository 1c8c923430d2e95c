package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestRegisterRequest_Validate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		req  RegisterRequest
		ok   bool
	}{
		{"valid", RegisterRequest{Email: "a@x.com", Password: "pw"}, true},
		{"bad email", RegisterRequest{Email: "not-an-email", Password: "pw"}, false},
		{"empty password", RegisterRequest{Email: "a@x.com"}, false},
		{"empty email", RegisterRequest{Password: "pw"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestCreateReviewRequest_Score(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name  string
		score *int
		ok    bool
		want  int
	}{
		{"omitted", nil, true, DefaultScore},
		{"lower bound", intPtr(1), true, 1},
		{"upper bound", intPtr(10), true, 10},
		{"zero", intPtr(0), false, 0},
		{"too high", intPtr(11), false, 11},
		{"negative", intPtr(-3), false, -3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := CreateReviewRequest{Content: "fine", Score: tc.score}
			err := req.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
			assert.Equal(t, tc.want, req.ScoreOrDefault())
		})
	}

	assert.Error(t, CreateReviewRequest{Score: intPtr(5)}.Validate())
}

func TestUpdateRoleRequest_Validate(t *testing.T) {
	t.Parallel()
	assert.NoError(t, UpdateRoleRequest{Role: "ADMIN"}.Validate())
	assert.NoError(t, UpdateRoleRequest{Role: "role_user"}.Validate())
	assert.Error(t, UpdateRoleRequest{Role: "SUPERUSER"}.Validate())
	assert.Error(t, UpdateRoleRequest{}.Validate())
}

func TestCreateMovieRequest_Validate(t *testing.T) {
	t.Parallel()
	neg := int64(-1)
	high := 11.0
	assert.NoError(t, CreateMovieRequest{Title: "Heat"}.Validate())
	assert.Error(t, CreateMovieRequest{}.Validate())
	assert.Error(t, CreateMovieRequest{Title: "Heat", ID: &neg}.Validate())
	assert.Error(t, CreateMovieRequest{Title: "Heat", Rating: &high}.Validate())
}

func TestSmallRequests_Validate(t *testing.T) {
	t.Parallel()
	assert.Error(t, LoginRequest{Email: "a@x.com"}.Validate())
	assert.NoError(t, LoginRequest{Email: "a@x.com", Password: "pw"}.Validate())
	assert.Error(t, ChangePasswordRequest{NewPassword: "n"}.Validate())
	assert.Error(t, UpdateReviewRequest{}.Validate())
	assert.Error(t, ListRequest{}.Validate())
	assert.Error(t, UpdateMovieRequest{}.Validate())
}
