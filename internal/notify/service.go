package notify

import (
	"time"

	"gorm.io/gorm"

	"github.com/Kunalgarg108/ShareSpace/internal/database"
	"github.com/Kunalgarg108/ShareSpace/internal/metrics"
	"github.com/Kunalgarg108/ShareSpace/internal/models"
	"github.com/Kunalgarg108/ShareSpace/pkg/apperr"
	"github.com/Kunalgarg108/ShareSpace/pkg/logger"
)

// Pusher is the live-delivery side of the hub; kept as an interface so the
// engine can be exercised with a fake in tests.
type Pusher interface {
	PushToUser(userID, event string, payload interface{})
}

// Service turns a successfully applied social action into zero or one
// notification and attempts live delivery. Failures here are logged and
// counted but never surface to the action that triggered them.
type Service struct {
	db  *gorm.DB
	hub Pusher
}

func NewService(db *gorm.DB, hub Pusher) *Service {
	return &Service{db: db, hub: hub}
}

const (
	unreadCacheTTL    = 30 * time.Second
	notificationLimit = 50
)

func unreadKey(userID string) string {
	return "notif:unread:" + userID
}

// NotifyOnAction persists and pushes a notification for a social action.
// A user acting on themselves never notifies - the rule is unconditional
// across all action types.
func (s *Service) NotifyOnAction(recipientID, actorID string, typ models.NotificationType, postID *string, message string) {
	if recipientID == actorID {
		return
	}

	n := models.Notification{
		UserID:  recipientID,
		ActorID: actorID,
		Type:    typ,
		PostID:  postID,
		Message: message,
	}
	if err := s.db.Create(&n).Error; err != nil {
		metrics.NotificationFailures.Inc()
		logger.Error().Err(err).
			Str("recipient", recipientID).
			Str("actor", actorID).
			Str("type", string(typ)).
			Msg("notification persist failed, suppressed")
		return
	}
	metrics.NotificationsCreated.Inc()

	if err := database.CacheInvalidate(unreadKey(recipientID)); err != nil {
		logger.Warn().Err(err).Msg("unread cache invalidation failed")
	}

	// Resolve actor/post display data for the live payload; fall back to
	// the bare record if the read fails.
	full := n
	if err := s.db.Preload("Actor").Preload("Post").First(&full, "id = ?", n.ID).Error; err != nil {
		full = n
	}

	if s.hub != nil {
		s.hub.PushToUser(recipientID, "notification", map[string]interface{}{
			"id":        full.ID,
			"type":      full.Type,
			"message":   full.Message,
			"actor":     full.Actor.Public(),
			"postId":    full.PostID,
			"isRead":    full.IsRead,
			"createdAt": full.CreatedAt,
		})
	}
}

// List returns the recipient's notifications newest-first, actor resolved,
// capped at the feed limit.
func (s *Service) List(userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Preload("Actor").Preload("Post").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(notificationLimit).
		Find(&notifications).Error
	if err != nil {
		return nil, apperr.Persistence("failed to load notifications")
	}
	return notifications, nil
}

// UnreadCount returns the number of unread notifications, cached briefly.
func (s *Service) UnreadCount(userID string) (int64, error) {
	var cached int64
	if err := database.CacheGet(unreadKey(userID), &cached); err == nil {
		return cached, nil
	}

	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, apperr.Persistence("failed to count notifications")
	}

	if err := database.CacheSet(unreadKey(userID), count, unreadCacheTTL); err != nil {
		logger.Warn().Err(err).Msg("unread cache write failed")
	}
	return count, nil
}

// MarkAllRead bulk-marks the recipient's unread notifications. Idempotent:
// nothing unread is a no-op.
func (s *Service) MarkAllRead(userID string) error {
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
	if err != nil {
		return apperr.Persistence("failed to mark notifications read")
	}
	if err := database.CacheInvalidate(unreadKey(userID)); err != nil {
		logger.Warn().Err(err).Msg("unread cache invalidation failed")
	}
	return nil
}
