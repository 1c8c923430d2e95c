package repo

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/moviehub/internal/apperr"
)

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

// ownedBy restricts a query to the row with id that belongs to userID. A
// mismatch on either column matches nothing, so "missing" and "not yours"
// look the same to the caller.
func ownedBy(id, userID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ? AND user_id = ?", id, userID)
	}
}

func notFound(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Wrap(apperr.ErrNotFound, message, err)
	}
	return err
}

func duplicate(err error, message string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Wrap(apperr.ErrConflict, message, err)
	}
	return err
}
