package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/Skotchmaster/moviehub/internal/access"
	"github.com/Skotchmaster/moviehub/internal/apperr"
	"github.com/Skotchmaster/moviehub/internal/logging"
	"github.com/Skotchmaster/moviehub/internal/models"
	"github.com/Skotchmaster/moviehub/internal/mykafka"
	"github.com/Skotchmaster/moviehub/internal/repo"
)

const (
	AllReviewsLimit    = 50
	RecentReviewsLimit = 10
)

type ReviewService struct {
	Repo   *repo.GormRepo
	Events mykafka.Publisher
}

func (s *ReviewService) Create(ctx context.Context, user *models.User, movieID int64, content string, score int) (*models.Review, error) {
	if _, err := s.Repo.GetMovie(ctx, movieID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.NotFound("Movie not found")
		}
		return nil, err
	}

	rv := &models.Review{Content: content, Score: score, UserID: user.ID, MovieID: movieID}
	if err := s.Repo.CreateReview(ctx, rv); err != nil {
		return nil, err
	}
	publish(ctx, s.Events, mykafka.TopicReviewEvents, reviewKey(rv.ID), "review_created", rv)
	return rv, nil
}

func (s *ReviewService) All(ctx context.Context) ([]models.Review, error) {
	return s.Repo.ListReviews(ctx, AllReviewsLimit)
}

func (s *ReviewService) Recent(ctx context.Context) ([]models.Review, error) {
	return s.Repo.RecentReviews(ctx, RecentReviewsLimit)
}

func (s *ReviewService) ForMovie(ctx context.Context, movieID int64) ([]models.Review, error) {
	return s.Repo.MovieReviews(ctx, movieID)
}

func (s *ReviewService) Get(ctx context.Context, id uint) (*models.Review, error) {
	return s.Repo.GetReview(ctx, id)
}

// Update changes the content of the caller's own review. A review that does
// not exist and one owned by somebody else are both reported as forbidden.
func (s *ReviewService) Update(ctx context.Context, user *models.User, id uint, content string) (*models.Review, error) {
	n, err := s.Repo.UpdateOwnedReview(ctx, id, user.ID, content)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		logging.FromContext(ctx).Warn("update_review_error", "status", 403, "review_id", id, "user_id", user.ID)
		return nil, apperr.Forbidden("Not your review")
	}

	rv, err := s.Repo.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.RequireOwnership(user, rv); err != nil {
		return nil, err
	}
	publish(ctx, s.Events, mykafka.TopicReviewEvents, reviewKey(rv.ID), "review_updated", rv)
	return rv, nil
}

// Delete removes the caller's own review. Anything else is a silent no-op.
func (s *ReviewService) Delete(ctx context.Context, user *models.User, id uint) error {
	n, err := s.Repo.DeleteOwnedReview(ctx, id, user.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		publish(ctx, s.Events, mykafka.TopicReviewEvents, reviewKey(id), "review_deleted",
			map[string]any{"review_id": id, "user_id": user.ID})
	}
	return nil
}

func reviewKey(id uint) string { return strconv.FormatUint(uint64(id), 10) }
