package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserFollow represents one user following another. The unique pair index
// makes the membership binary; follower/following lists on both users are
// views over the same row.
type UserFollow struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	FollowerID string `gorm:"uniqueIndex:idx_follower_followee;type:text;not null" json:"followerId"`
	Follower   User   `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`

	FolloweeID string `gorm:"uniqueIndex:idx_follower_followee;type:text;not null" json:"followeeId"`
	Followee   User   `gorm:"foreignKey:FolloweeID" json:"followee,omitempty"`
}

func (UserFollow) TableName() string {
	return "user_follows"
}

func (uf *UserFollow) BeforeCreate(tx *gorm.DB) (err error) {
	if uf.ID == "" {
		uf.ID = uuid.New().String()
	}
	return
}
