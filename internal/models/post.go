package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is the minimal subject row engagement needs: enough to resolve the
// author for notifications. Post creation and feeds live in the post
// subsystem.
type Post struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	AuthorID string `gorm:"index;type:text;not null" json:"authorId"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	Caption string `gorm:"type:text" json:"caption"`
	Image   string `json:"image"`

	LikesCount int64 `gorm:"default:0" json:"likesCount"`
}

func (Post) TableName() string {
	return "posts"
}

func (p *Post) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

// Comment on a post. Screened by the moderation classifier before creation.
type Comment struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	PostID string `gorm:"index;type:text;not null" json:"postId"`
	Post   Post   `gorm:"foreignKey:PostID" json:"-"`

	AuthorID string `gorm:"index;type:text;not null" json:"authorId"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	Text string `gorm:"type:text;not null" json:"text"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// PostLike is the explicit set membership behind both post.likes and
// user.likedPosts; one row serves both directions.
type PostLike struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	UserID string `gorm:"uniqueIndex:idx_user_post_like;type:text;not null" json:"userId"`
	PostID string `gorm:"uniqueIndex:idx_user_post_like;type:text;not null" json:"postId"`
}

func (PostLike) TableName() string {
	return "post_likes"
}

func (pl *PostLike) BeforeCreate(tx *gorm.DB) (err error) {
	if pl.ID == "" {
		pl.ID = uuid.New().String()
	}
	return
}

// Bookmark is a private save; it never notifies anyone.
type Bookmark struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	UserID string `gorm:"uniqueIndex:idx_user_post_bookmark;type:text;not null" json:"userId"`
	PostID string `gorm:"uniqueIndex:idx_user_post_bookmark;type:text;not null" json:"postId"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}

func (b *Bookmark) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return
}
