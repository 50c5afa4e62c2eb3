package store

import (
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/Kunalgarg108/ShareSpace/internal/models"
	"github.com/Kunalgarg108/ShareSpace/pkg/apperr"
)

// SocialStore runs the like/follow/bookmark toggle state machines and the
// comment writes. Each toggle is a two-state machine per (actor, target)
// pair; re-applying flips the state off.
type SocialStore struct {
	db *gorm.DB
}

func NewSocialStore(db *gorm.DB) *SocialStore {
	return &SocialStore{db: db}
}

// ToggleLike flips the actor's like on a post and returns the new state
// along with the post (the caller needs the author for fan-out). Both the
// post's like set and the actor's liked-posts view are the same row, so the
// two sides can never diverge.
func (s *SocialStore) ToggleLike(actorID, postID string) (bool, *models.Post, error) {
	post, err := s.loadPost(postID)
	if err != nil {
		return false, nil, err
	}
	if err := s.userExists(actorID); err != nil {
		return false, nil, err
	}

	applied := false
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.PostLike
		err := tx.Where("user_id = ? AND post_id = ?", actorID, postID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			return tx.Model(&models.Post{}).Where("id = ?", postID).
				UpdateColumn("likes_count", gorm.Expr("likes_count - 1")).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			applied = true
			if err := tx.Create(&models.PostLike{UserID: actorID, PostID: postID}).Error; err != nil {
				return err
			}
			return tx.Model(&models.Post{}).Where("id = ?", postID).
				UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error
		default:
			return err
		}
	})
	if err != nil {
		return false, nil, apperr.Persistence("failed to toggle like")
	}
	return applied, post, nil
}

// ToggleBookmark flips the actor's private save on a post.
func (s *SocialStore) ToggleBookmark(actorID, postID string) (bool, error) {
	if _, err := s.loadPost(postID); err != nil {
		return false, err
	}
	if err := s.userExists(actorID); err != nil {
		return false, err
	}

	applied := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Bookmark
		err := tx.Where("user_id = ? AND post_id = ?", actorID, postID).First(&existing).Error
		switch {
		case err == nil:
			return tx.Delete(&existing).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			applied = true
			return tx.Create(&models.Bookmark{UserID: actorID, PostID: postID}).Error
		default:
			return err
		}
	})
	if err != nil {
		return false, apperr.Persistence("failed to toggle bookmark")
	}
	return applied, nil
}

// ToggleFollow flips the follow relation and keeps both users' counters in
// step inside one transaction. Self-follow is forbidden.
func (s *SocialStore) ToggleFollow(actorID, targetID string) (bool, error) {
	if actorID == targetID {
		return false, apperr.InvalidOperation("you cannot follow yourself")
	}
	if err := s.userExists(actorID); err != nil {
		return false, err
	}
	if err := s.userExists(targetID); err != nil {
		return false, err
	}

	applied := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.UserFollow
		err := tx.Where("follower_id = ? AND followee_id = ?", actorID, targetID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			return s.adjustFollowCounters(tx, actorID, targetID, -1)
		case errors.Is(err, gorm.ErrRecordNotFound):
			applied = true
			if err := tx.Create(&models.UserFollow{FollowerID: actorID, FolloweeID: targetID}).Error; err != nil {
				return err
			}
			return s.adjustFollowCounters(tx, actorID, targetID, +1)
		default:
			return err
		}
	})
	if err != nil {
		return false, apperr.Persistence("failed to toggle follow")
	}
	return applied, nil
}

// adjustFollowCounters updates both sides of the mirror in deterministic id
// order so concurrent toggles on overlapping users cannot deadlock.
func (s *SocialStore) adjustFollowCounters(tx *gorm.DB, followerID, followeeID string, delta int) error {
	updates := []struct {
		id     string
		column string
	}{
		{id: followerID, column: "following_count"},
		{id: followeeID, column: "followers_count"},
	}
	sort.Slice(updates, func(i, j int) bool { return updates[i].id < updates[j].id })

	for _, u := range updates {
		err := tx.Model(&models.User{}).Where("id = ?", u.id).
			UpdateColumn(u.column, gorm.Expr(u.column+" + ?", delta)).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// IsFollowing reports the current follow state.
func (s *SocialStore) IsFollowing(actorID, targetID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.UserFollow{}).
		Where("follower_id = ? AND followee_id = ?", actorID, targetID).
		Count(&count).Error
	if err != nil {
		return false, apperr.Persistence("failed to check follow state")
	}
	return count > 0, nil
}

// ListFollowers returns the users following userID.
func (s *SocialStore) ListFollowers(userID string) ([]models.PublicUser, error) {
	return s.followSide(userID, "followee_id", "follower_id")
}

// ListFollowing returns the users userID follows.
func (s *SocialStore) ListFollowing(userID string) ([]models.PublicUser, error) {
	return s.followSide(userID, "follower_id", "followee_id")
}

func (s *SocialStore) followSide(userID, whereCol, selectCol string) ([]models.PublicUser, error) {
	var users []models.User
	err := s.db.Model(&models.User{}).
		Joins("JOIN user_follows ON user_follows."+selectCol+" = users.id").
		Where("user_follows."+whereCol+" = ?", userID).
		Find(&users).Error
	if err != nil {
		return nil, apperr.Persistence("failed to load follow list")
	}

	public := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}
	return public, nil
}

// AddComment persists a comment and returns it with the post, which the
// caller needs to decide whether fan-out fires.
func (s *SocialStore) AddComment(actorID, postID, text string) (*models.Comment, *models.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil, apperr.Validation("comment text is required")
	}
	post, err := s.loadPost(postID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.userExists(actorID); err != nil {
		return nil, nil, err
	}

	comment := models.Comment{PostID: postID, AuthorID: actorID, Text: text}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, nil, apperr.Persistence("failed to store comment")
	}
	if err := s.db.Preload("Author").First(&comment, "id = ?", comment.ID).Error; err != nil {
		return nil, nil, apperr.Persistence("failed to load comment")
	}
	return &comment, post, nil
}

// ListComments returns a post's comments newest-first.
func (s *SocialStore) ListComments(postID string) ([]models.Comment, error) {
	if _, err := s.loadPost(postID); err != nil {
		return nil, err
	}

	var comments []models.Comment
	err := s.db.Where("post_id = ?", postID).
		Order("created_at desc").
		Preload("Author").
		Find(&comments).Error
	if err != nil {
		return nil, apperr.Persistence("failed to load comments")
	}
	return comments, nil
}

func (s *SocialStore) loadPost(postID string) (*models.Post, error) {
	var post models.Post
	err := s.db.First(&post, "id = ?", postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("post not found")
	}
	if err != nil {
		return nil, apperr.Persistence("failed to load post")
	}
	return &post, nil
}

func (s *SocialStore) userExists(userID string) error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return apperr.Persistence("failed to look up user")
	}
	if count == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}
