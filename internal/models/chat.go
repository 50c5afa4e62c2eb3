package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation is identified by the unordered participant pair. PairKey is
// the normalized "lowID:highID" form; its unique index is what guarantees
// at most one conversation per pair even under concurrent first contact.
type Conversation struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `gorm:"index" json:"updatedAt"`

	PairKey string `gorm:"uniqueIndex;not null" json:"-"`
	UserAID string `gorm:"index;type:text;not null" json:"userAId"`
	UserBID string `gorm:"index;type:text;not null" json:"userBId"`
}

func (Conversation) TableName() string {
	return "conversations"
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// CounterpartID returns the participant that is not userID.
func (c *Conversation) CounterpartID(userID string) string {
	if c.UserAID == userID {
		return c.UserBID
	}
	return c.UserAID
}

// PairKeyFor normalizes an unordered user pair into the conversation key.
func PairKeyFor(a, b string) string {
	if a < b {
		return a + ":" + b
	}
	return b + ":" + a
}

// Message is immutable once created; only the read flag may change later.
type Message struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	ConversationID string `gorm:"index;type:text;not null" json:"conversationId"`

	SenderID string `gorm:"index;type:text;not null" json:"senderId"`
	Sender   User   `gorm:"foreignKey:SenderID" json:"sender,omitempty"`

	ReceiverID string `gorm:"index;type:text;not null" json:"receiverId"`
	Receiver   User   `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`

	Text   string `gorm:"type:text;not null" json:"text"`
	IsRead bool   `gorm:"default:false" json:"isRead"`
}

func (Message) TableName() string {
	return "messages"
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}
