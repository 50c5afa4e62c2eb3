package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User holds the display fields this service reads plus the relation
// counters it maintains. Account data (credentials, email verification)
// is owned by the account subsystem.
type User struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex" json:"email"`
	Avatar   string `json:"avatar"`
	Bio      string `json:"bio"`

	// Maintained transactionally by the follow toggle.
	FollowersCount int64 `gorm:"default:0" json:"followersCount"`
	FollowingCount int64 `gorm:"default:0" json:"followingCount"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// PublicUser is the shape embedded in messages and notifications.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Avatar: u.Avatar}
}
