package transport

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/Skotchmaster/moviehub/internal/models"
)

const (
	MinScore     = 1
	MaxScore     = 10
	DefaultScore = 5
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(3, 255), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(1, 128)),
	)
}

// LoginRequest accepts JSON {email,password} as well as the OAuth2 password
// form, where the email travels as "username".
type LoginRequest struct {
	Email    string `json:"email"    form:"username"`
	Password string `json:"password" form:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CurrentPassword, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(1, 128)),
	)
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

func (r UpdateRoleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Role, validation.Required, validation.By(func(v interface{}) error {
			if _, ok := models.ParseRole(v.(string)); !ok {
				return errors.New("must be USER or ADMIN")
			}
			return nil
		})),
	)
}

type CreateReviewRequest struct {
	Content string `json:"content"`
	Score   *int   `json:"score"`
}

func (r CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required),
		validation.Field(&r.Score, validation.By(scoreInRange)),
	)
}

// ScoreOrDefault returns the submitted score, or DefaultScore when none was
// sent.
func (r CreateReviewRequest) ScoreOrDefault() int {
	if r.Score == nil {
		return DefaultScore
	}
	return *r.Score
}

func scoreInRange(v interface{}) error {
	s, _ := v.(*int)
	if s == nil {
		return nil
	}
	if *s < MinScore || *s > MaxScore {
		return errors.New("must be between 1 and 10")
	}
	return nil
}

type UpdateReviewRequest struct {
	Content string `json:"content" query:"content"`
}

func (r UpdateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required),
	)
}

type ListRequest struct {
	Title       string  `json:"title" query:"title"`
	Description *string `json:"description"`
}

func (r ListRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
	)
}

type CreateMovieRequest struct {
	ID          *int64   `json:"id"`
	Title       string   `json:"title"        query:"title"`
	Overview    string   `json:"overview"`
	PosterPath  string   `json:"poster_path"`
	Rating      *float64 `json:"rating"`
	ReleaseDate string   `json:"release_date"`
}

func (r CreateMovieRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.By(func(v interface{}) error {
			if id, _ := v.(*int64); id != nil && *id <= 0 {
				return errors.New("must be positive")
			}
			return nil
		})),
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Rating, validation.By(func(v interface{}) error {
			if rt, _ := v.(*float64); rt != nil && (*rt < 0 || *rt > 10) {
				return errors.New("must be between 0 and 10")
			}
			return nil
		})),
	)
}

type UpdateMovieRequest struct {
	Title string `json:"title" query:"title"`
}

func (r UpdateMovieRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
	)
}

type Message struct {
	Message string `json:"message"`
}

type Msg struct {
	Msg string `json:"msg"`
}

type Status struct {
	Status string `json:"status"`
}

type SyncResult struct {
	Status string `json:"status"`
	Added  int    `json:"added"`
}

type Health struct {
	Status string `json:"status"`
	Visits *int64 `json:"visits"`
	Redis  string `json:"redis"`
}
