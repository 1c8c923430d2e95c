package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/Skotchmaster/moviehub/internal/apperr"
	"github.com/Skotchmaster/moviehub/internal/hash"
	"github.com/Skotchmaster/moviehub/internal/logging"
	"github.com/Skotchmaster/moviehub/internal/models"
	"github.com/Skotchmaster/moviehub/internal/mykafka"
	"github.com/Skotchmaster/moviehub/internal/repo"
	"github.com/Skotchmaster/moviehub/internal/tokens"
)

type AuthService struct {
	Repo   *repo.GormRepo
	Tokens *tokens.Service
	Events mykafka.Publisher
}

type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	taken, err := s.Repo.EmailTaken(ctx, email)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot check email", "error", err)
		return nil, err
	}
	if taken {
		l.Warn("register_error", "status", 409, "reason", "email exists")
		return nil, apperr.Conflict("Email exists")
	}

	digest, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := &models.User{Email: email, PasswordHash: digest, Role: models.RoleUser}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	publish(ctx, s.Events, mykafka.TopicUserEvents, strconv.FormatUint(uint64(user.ID), 10), "user_registered",
		map[string]any{"user_id": user.ID, "email": user.Email})
	return user, nil
}

// Login checks the credentials and issues an access token bound to the
// user's current token version. Unknown email and wrong password are
// reported the same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			l.Warn("login_error", "status", 401, "reason", "unknown email")
			return nil, apperr.Unauthorized("Login failed")
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_error", "status", 401, "reason", "wrong password", "user_id", user.ID)
		return nil, apperr.Unauthorized("Login failed")
	}

	token, exp, err := s.Tokens.Issue(user.Email, user.Role, user.TokenVersion)
	if err != nil {
		l.Error("login_error", "status", 500, "reason", "cannot issue token", "error", err)
		return nil, err
	}
	return &LoginResult{AccessToken: token, ExpiresAt: exp}, nil
}

// Logout revokes every token issued to the user so far.
func (s *AuthService) Logout(ctx context.Context, user *models.User) error {
	return s.Repo.BumpTokenVersion(ctx, user.ID)
}

// EnsureAdmin makes sure an administrator with the given email exists. An
// existing account is promoted, its password is left alone.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	l := logging.FromContext(ctx).With("svc", "auth.ensure_admin")

	user, err := s.Repo.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		if user.Role == models.RoleAdmin {
			return nil
		}
		l.Info("admin_promoted", "user_id", user.ID)
		return s.Repo.UpdateRole(ctx, user.ID, models.RoleAdmin)
	case errors.Is(err, apperr.ErrNotFound):
	default:
		return err
	}

	digest, err := hash.HashPassword(password)
	if err != nil {
		return err
	}
	admin := &models.User{Email: email, PasswordHash: digest, Role: models.RoleAdmin}
	if err := s.Repo.CreateUser(ctx, admin); err != nil {
		return err
	}
	l.Info("admin_created", "user_id", admin.ID)
	return nil
}
