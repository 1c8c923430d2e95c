package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/Skotchmaster/moviehub/internal/access"
	"github.com/Skotchmaster/moviehub/internal/apperr"
	"github.com/Skotchmaster/moviehub/internal/models"
	"github.com/Skotchmaster/moviehub/internal/mykafka"
	"github.com/Skotchmaster/moviehub/internal/repo"
)

type ListService struct {
	Repo   *repo.GormRepo
	Events mykafka.Publisher
}

func (s *ListService) Create(ctx context.Context, user *models.User, title string, description *string) (*models.PersonalList, error) {
	l := &models.PersonalList{Title: title, Description: description, UserID: user.ID}
	if err := s.Repo.CreateList(ctx, l); err != nil {
		return nil, err
	}
	publish(ctx, s.Events, mykafka.TopicListEvents, listKey(l.ID), "list_created", l)
	return l, nil
}

func (s *ListService) Mine(ctx context.Context, user *models.User) ([]models.PersonalList, error) {
	return s.Repo.UserLists(ctx, user.ID)
}

func (s *ListService) Get(ctx context.Context, id uint) (*models.PersonalList, error) {
	return s.Repo.GetListWithMovies(ctx, id)
}

// Update is scoped to the caller's lists. Nothing matching is not an error.
func (s *ListService) Update(ctx context.Context, user *models.User, id uint, title string, description *string) error {
	_, err := s.Repo.UpdateOwnedList(ctx, id, user.ID, title, description)
	return err
}

// Delete is scoped to the caller's lists. Nothing matching is not an error.
func (s *ListService) Delete(ctx context.Context, user *models.User, id uint) error {
	n, err := s.Repo.DeleteOwnedList(ctx, id, user.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		publish(ctx, s.Events, mykafka.TopicListEvents, listKey(id), "list_deleted",
			map[string]any{"list_id": id, "user_id": user.ID})
	}
	return nil
}

// AddMovie links a movie to one of the caller's lists. Another user's list
// is reported as missing.
func (s *ListService) AddMovie(ctx context.Context, user *models.User, listID uint, movieID int64) error {
	l, err := s.Repo.FindOwnedList(ctx, listID, user.ID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.NotFound("List not found")
		}
		return err
	}
	if err := access.RequireOwnership(user, l); err != nil {
		return err
	}

	m, err := s.Repo.GetMovie(ctx, movieID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.NotFound("Movie not found")
		}
		return err
	}
	return s.Repo.AddMovieToList(ctx, l, m)
}

func (s *ListService) RemoveMovie(ctx context.Context, user *models.User, listID uint, movieID int64) error {
	_, err := s.Repo.RemoveMovieFromOwnedList(ctx, listID, user.ID, movieID)
	return err
}

func listKey(id uint) string { return strconv.FormatUint(uint64(id), 10) }
