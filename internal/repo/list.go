package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/moviehub/internal/models"
)

const ownedListSubquery = "SELECT id FROM personal_lists WHERE id = ? AND user_id = ?"

func (r *GormRepo) CreateList(ctx context.Context, l *models.PersonalList) error {
	return r.DB.WithContext(ctx).Create(l).Error
}

func (r *GormRepo) UserLists(ctx context.Context, userID uint) ([]models.PersonalList, error) {
	var items []models.PersonalList
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) AllLists(ctx context.Context) ([]models.PersonalList, error) {
	var items []models.PersonalList
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetListWithMovies(ctx context.Context, id uint) (*models.PersonalList, error) {
	var l models.PersonalList
	err := r.DB.WithContext(ctx).
		Preload("Movies", func(db *gorm.DB) *gorm.DB { return db.Order("movies.id ASC") }).
		First(&l, id).Error
	if err != nil {
		return nil, notFound(err, "list not found")
	}
	return &l, nil
}

func (r *GormRepo) FindOwnedList(ctx context.Context, id, userID uint) (*models.PersonalList, error) {
	var l models.PersonalList
	if err := r.DB.WithContext(ctx).Scopes(ownedBy(id, userID)).First(&l).Error; err != nil {
		return nil, notFound(err, "list not found")
	}
	return &l, nil
}

// UpdateOwnedList renames the list and, when description is non-nil,
// replaces its description.
func (r *GormRepo) UpdateOwnedList(ctx context.Context, id, userID uint, title string, description *string) (int64, error) {
	fields := map[string]any{"title": title}
	if description != nil {
		fields["description"] = *description
	}
	res := r.DB.WithContext(ctx).Model(&models.PersonalList{}).Scopes(ownedBy(id, userID)).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *GormRepo) DeleteOwnedList(ctx context.Context, id, userID uint) (int64, error) {
	var affected int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM movie_list_association WHERE personal_list_id IN ("+ownedListSubquery+")", id, userID,
		).Error; err != nil {
			return err
		}
		res := tx.Scopes(ownedBy(id, userID)).Delete(&models.PersonalList{})
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}

// AddMovieToList links movie to list. Linking a movie twice keeps a single
// association row.
func (r *GormRepo) AddMovieToList(ctx context.Context, l *models.PersonalList, m *models.Movie) error {
	return r.DB.WithContext(ctx).Model(l).Association("Movies").Append(m)
}

func (r *GormRepo) RemoveMovieFromOwnedList(ctx context.Context, listID, userID uint, movieID int64) (int64, error) {
	res := r.DB.WithContext(ctx).Exec(
		"DELETE FROM movie_list_association WHERE movie_id = ? AND personal_list_id IN ("+ownedListSubquery+")",
		movieID, listID, userID,
	)
	return res.RowsAffected, res.Error
}
