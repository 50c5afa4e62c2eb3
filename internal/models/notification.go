package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTypeLike    NotificationType = "like"
	NotificationTypeComment NotificationType = "comment"
	NotificationTypeFollow  NotificationType = "follow"
	NotificationTypeMessage NotificationType = "message"
	NotificationTypeMention NotificationType = "mention"
)

// Notification records "actor did X to user, regarding optional post".
// Never created when the recipient is the actor.
type Notification struct {
	ID        string           `gorm:"primaryKey;type:text" json:"id"`
	UserID    string           `gorm:"index;type:text;not null" json:"userId"` // Recipient
	ActorID   string           `gorm:"index;type:text" json:"actorId"`         // Who performed the action
	Type      NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	PostID    *string          `gorm:"index;type:text" json:"postId,omitempty"`
	Message   string           `gorm:"type:text" json:"message"`
	IsRead    bool             `gorm:"default:false" json:"isRead"`
	CreatedAt time.Time        `json:"createdAt"`

	// Relations
	User  User  `gorm:"foreignKey:UserID" json:"-"`
	Actor User  `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
	Post  *Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	return
}
