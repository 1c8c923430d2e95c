package models

import (
	"strings"
	"time"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole accepts the two known roles case-insensitively, plus the
// "ROLE_" prefixed spelling used by earlier clients.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "ROLE_"))
	if r.Valid() {
		return r, true
	}
	return "", false
}

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID            uint           `gorm:"primaryKey;autoIncrement"  json:"id"`
	Email         string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash  string         `gorm:"size:255;not null"         json:"-"`
	Role          Role           `gorm:"size:50;not null;default:USER" json:"role"`
	TokenVersion  int            `gorm:"not null;default:0"        json:"-"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"            json:"created_at"`
	Reviews       []Review       `gorm:"foreignKey:UserID"         json:"reviews,omitempty"`
	PersonalLists []PersonalList `gorm:"foreignKey:UserID"         json:"personal_lists,omitempty"`
}

type Movie struct {
	ID          int64   `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Title       string  `gorm:"size:255;not null"              json:"title"`
	Overview    string  `gorm:"type:text"                      json:"overview"`
	PosterPath  string  `gorm:"size:255"                       json:"poster_path"`
	Rating      float64 `gorm:"default:0"                      json:"rating"`
	ReleaseDate string  `gorm:"size:50"                        json:"release_date"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Content   string    `gorm:"type:text;not null"       json:"content"`
	Score     int       `gorm:"not null;default:5"       json:"score"`
	UserID    uint      `gorm:"index;not null"           json:"user_id"`
	MovieID   int64     `gorm:"index;not null"           json:"movie_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"     json:"created_at"`
}

func (r Review) OwnerID() uint { return r.UserID }

type PersonalList struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"             json:"id"`
	Title       string  `gorm:"size:255;not null"                    json:"title"`
	Description *string `gorm:"type:text"                            json:"description"`
	UserID      uint    `gorm:"index;not null"                       json:"user_id"`
	Movies      []Movie `gorm:"many2many:movie_list_association;"    json:"movies,omitempty"`
}

func (l PersonalList) OwnerID() uint { return l.UserID }

// All lists every table the service owns, in migration order.
func All() []any {
	return []any{&User{}, &Movie{}, &Review{}, &PersonalList{}}
}
