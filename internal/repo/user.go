package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/moviehub/internal/models"
)

func (r *GormRepo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err, "user not found")
	}
	return &user, nil
}

func (r *GormRepo) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, "user not found")
	}
	return &user, nil
}

// GetUserProfile loads the user with their reviews and personal lists.
func (r *GormRepo) GetUserProfile(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("PersonalLists", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&user, id).Error
	if err != nil {
		return nil, notFound(err, "user not found")
	}
	return &user, nil
}

func (r *GormRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	if err := r.DB.WithContext(ctx).Create(u).Error; err != nil {
		return duplicate(err, "Email exists")
	}
	return nil
}

func (r *GormRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdatePassword stores a new digest and bumps the token version so that
// tokens issued under the old password stop resolving.
func (r *GormRepo) UpdatePassword(ctx context.Context, id uint, digest string) error {
	res := r.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(map[string]any{
		"password_hash": digest,
		"token_version": gorm.Expr("token_version + 1"),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "user not found")
	}
	return nil
}

func (r *GormRepo) UpdateRole(ctx context.Context, id uint, role models.Role) error {
	res := r.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(map[string]any{
		"role":          role,
		"token_version": gorm.Expr("token_version + 1"),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "user not found")
	}
	return nil
}

func (r *GormRepo) BumpTokenVersion(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Update("token_version", gorm.Expr("token_version + 1")).Error
}

// DeleteUser removes the user together with everything they own. Deleting a
// user that is already gone is not an error.
func (r *GormRepo) DeleteUser(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM movie_list_association WHERE personal_list_id IN (SELECT id FROM personal_lists WHERE user_id = ?)", id,
		).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.PersonalList{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}

type Stats struct {
	TotalUsers   int64 `json:"total_users"`
	TotalMovies  int64 `json:"total_movies"`
	TotalReviews int64 `json:"total_reviews"`
	TotalLists   int64 `json:"total_lists"`
}

func (r *GormRepo) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	db := r.DB.WithContext(ctx)
	for _, c := range []struct {
		model any
		dst   *int64
	}{
		{&models.User{}, &s.TotalUsers},
		{&models.Movie{}, &s.TotalMovies},
		{&models.Review{}, &s.TotalReviews},
		{&models.PersonalList{}, &s.TotalLists},
	} {
		if err := db.Model(c.model).Count(c.dst).Error; err != nil {
			return nil, err
		}
	}
	return &s, nil
}
