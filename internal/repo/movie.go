package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/moviehub/internal/models"
)

func (r *GormRepo) GetMovie(ctx context.Context, id int64) (*models.Movie, error) {
	var movie models.Movie
	if err := r.DB.WithContext(ctx).First(&movie, id).Error; err != nil {
		return nil, notFound(err, "movie not found")
	}
	return &movie, nil
}

// ListMovies pages through the catalog ordered by id. A non-empty q filters
// on a case-insensitive title substring.
func (r *GormRepo) ListMovies(ctx context.Context, q string, offset, limit int) (int64, []models.Movie, error) {
	base := func() *gorm.DB {
		db := r.DB.WithContext(ctx).Model(&models.Movie{})
		if q != "" {
			db = db.Where("LOWER(title) LIKE LOWER(?)", "%"+q+"%")
		}
		return db
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Movie, 0, limit)
	if err := base().Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) MoviesByIDs(ctx context.Context, ids []int64) ([]models.Movie, error) {
	if len(ids) == 0 {
		return []models.Movie{}, nil
	}
	var movies []models.Movie
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&movies).Error; err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *GormRepo) TopRatedMovies(ctx context.Context, n int) ([]models.Movie, error) {
	movies := make([]models.Movie, 0, n)
	if err := r.DB.WithContext(ctx).Order("rating DESC").Order("id ASC").Limit(n).Find(&movies).Error; err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *GormRepo) CreateMovie(ctx context.Context, m *models.Movie) error {
	if err := r.DB.WithContext(ctx).Create(m).Error; err != nil {
		return duplicate(err, "movie already exists")
	}
	return nil
}

// InsertMissingMovies inserts the movies whose id is not stored yet and
// returns exactly those. Existing rows are left untouched.
func (r *GormRepo) InsertMissingMovies(ctx context.Context, movies []models.Movie) ([]models.Movie, error) {
	added := make([]models.Movie, 0, len(movies))
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range movies {
			m := movies[i]
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&m)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				added = append(added, m)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

func (r *GormRepo) UpdateMovieTitle(ctx context.Context, id int64, title string) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&models.Movie{}).Where("id = ?", id).Update("title", title)
	return res.RowsAffected, res.Error
}

// DeleteMovie removes the movie, its reviews and its list memberships.
func (r *GormRepo) DeleteMovie(ctx context.Context, id int64) (int64, error) {
	var affected int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM movie_list_association WHERE movie_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("movie_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Movie{}, id)
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}
