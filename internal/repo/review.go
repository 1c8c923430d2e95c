package repo

import (
	"context"

	"github.com/Skotchmaster/moviehub/internal/models"
)

func (r *GormRepo) CreateReview(ctx context.Context, rv *models.Review) error {
	return r.DB.WithContext(ctx).Create(rv).Error
}

func (r *GormRepo) GetReview(ctx context.Context, id uint) (*models.Review, error) {
	var rv models.Review
	if err := r.DB.WithContext(ctx).First(&rv, id).Error; err != nil {
		return nil, notFound(err, "review not found")
	}
	return &rv, nil
}

func (r *GormRepo) ListReviews(ctx context.Context, limit int) ([]models.Review, error) {
	items := make([]models.Review, 0, limit)
	if err := r.DB.WithContext(ctx).Order("id ASC").Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) RecentReviews(ctx context.Context, limit int) ([]models.Review, error) {
	items := make([]models.Review, 0, limit)
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Order("id DESC").Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) MovieReviews(ctx context.Context, movieID int64) ([]models.Review, error) {
	var items []models.Review
	if err := r.DB.WithContext(ctx).Where("movie_id = ?", movieID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindOwnedReview returns the review only when it belongs to userID.
func (r *GormRepo) FindOwnedReview(ctx context.Context, id, userID uint) (*models.Review, error) {
	var rv models.Review
	if err := r.DB.WithContext(ctx).Scopes(ownedBy(id, userID)).First(&rv).Error; err != nil {
		return nil, notFound(err, "review not found")
	}
	return &rv, nil
}

func (r *GormRepo) UpdateOwnedReview(ctx context.Context, id, userID uint, content string) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&models.Review{}).Scopes(ownedBy(id, userID)).Update("content", content)
	return res.RowsAffected, res.Error
}

func (r *GormRepo) DeleteOwnedReview(ctx context.Context, id, userID uint) (int64, error) {
	res := r.DB.WithContext(ctx).Scopes(ownedBy(id, userID)).Delete(&models.Review{})
	return res.RowsAffected, res.Error
}
