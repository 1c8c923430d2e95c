package service

import (
	"context"
	"strconv"

	"github.com/Skotchmaster/moviehub/internal/apperr"
	"github.com/Skotchmaster/moviehub/internal/hash"
	"github.com/Skotchmaster/moviehub/internal/logging"
	"github.com/Skotchmaster/moviehub/internal/models"
	"github.com/Skotchmaster/moviehub/internal/mykafka"
	"github.com/Skotchmaster/moviehub/internal/repo"
)

type UserService struct {
	Repo   *repo.GormRepo
	Events mykafka.Publisher
}

func (s *UserService) Me(ctx context.Context, user *models.User) (*models.User, error) {
	return s.Repo.GetUserProfile(ctx, user.ID)
}

// ChangePassword replaces the password after checking the current one. The
// token version is bumped, so the caller has to log in again.
func (s *UserService) ChangePassword(ctx context.Context, user *models.User, current, next string) error {
	l := logging.FromContext(ctx).With("svc", "user.change_password", "user_id", user.ID)

	if !hash.CheckPassword(user.PasswordHash, current) {
		l.Warn("change_password_error", "status", 401, "reason", "wrong current password")
		return apperr.Unauthorized("Current password is incorrect")
	}
	digest, err := hash.HashPassword(next)
	if err != nil {
		l.Error("change_password_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return err
	}
	return s.Repo.UpdatePassword(ctx, user.ID, digest)
}

func (s *UserService) DeleteMe(ctx context.Context, user *models.User) error {
	if err := s.Repo.DeleteUser(ctx, user.ID); err != nil {
		return err
	}
	publish(ctx, s.Events, mykafka.TopicUserEvents, strconv.FormatUint(uint64(user.ID), 10), "user_deleted",
		map[string]any{"user_id": user.ID})
	return nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.Repo.ListUsers(ctx)
}

func (s *UserService) Stats(ctx context.Context) (*repo.Stats, error) {
	return s.Repo.Stats(ctx)
}

func (s *UserService) AllLists(ctx context.Context) ([]models.PersonalList, error) {
	return s.Repo.AllLists(ctx)
}

// UpdateRole sets the role of another account. Tokens already issued to that
// account stop resolving.
func (s *UserService) UpdateRole(ctx context.Context, id uint, raw string) error {
	role, ok := models.ParseRole(raw)
	if !ok {
		return apperr.Validation("role must be USER or ADMIN")
	}
	if err := s.Repo.UpdateRole(ctx, id, role); err != nil {
		return err
	}
	publish(ctx, s.Events, mykafka.TopicUserEvents, strconv.FormatUint(uint64(id), 10), "role_changed",
		map[string]any{"user_id": id, "role": role})
	return nil
}
