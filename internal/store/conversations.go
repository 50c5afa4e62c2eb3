package store

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Kunalgarg108/ShareSpace/internal/models"
	"github.com/Kunalgarg108/ShareSpace/pkg/apperr"
)

// ConversationStore is the durable record of who has talked to whom and in
// what order.
type ConversationStore struct {
	db *gorm.DB
}

func NewConversationStore(db *gorm.DB) *ConversationStore {
	return &ConversationStore{db: db}
}

// RecentConversation is one entry of the recent-chats list: the counterpart
// (never self) and when the thread last moved.
type RecentConversation struct {
	ConversationID string            `json:"conversationId"`
	User           models.PublicUser `json:"user"`
	LastUpdated    time.Time         `json:"lastUpdated"`
}

// FindOrCreate returns the single conversation for an unordered user pair,
// creating it on first contact. The unique index on the normalized pair key
// plus ON CONFLICT DO NOTHING keeps concurrent first-contact from both
// sides converged on one row.
func (s *ConversationStore) FindOrCreate(userA, userB string) (*models.Conversation, error) {
	key := models.PairKeyFor(userA, userB)
	low, high := userA, userB
	if high < low {
		low, high = high, low
	}

	conv := models.Conversation{PairKey: key, UserAID: low, UserBID: high}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pair_key"}},
		DoNothing: true,
	}).Create(&conv).Error
	if err != nil {
		return nil, apperr.Persistence("failed to create conversation")
	}

	// Re-read: the create may have been a no-op lost to a concurrent winner.
	var out models.Conversation
	if err := s.db.Where("pair_key = ?", key).First(&out).Error; err != nil {
		return nil, apperr.Persistence("failed to load conversation")
	}
	return &out, nil
}

// AppendMessage validates, persists and returns a new immutable message,
// bumping the conversation recency in the same transaction. Sender and
// receiver display data come back resolved.
func (s *ConversationStore) AppendMessage(senderID, receiverID, text string) (*models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperr.Validation("message text is required")
	}
	if err := s.usersExist(senderID, receiverID); err != nil {
		return nil, err
	}

	conv, err := s.FindOrCreate(senderID, receiverID)
	if err != nil {
		return nil, err
	}

	msg := models.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Text:           text,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&msg).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).
			Where("id = ?", conv.ID).
			Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return nil, apperr.Persistence("failed to store message")
	}

	if err := s.db.Preload("Sender").Preload("Receiver").
		First(&msg, "id = ?", msg.ID).Error; err != nil {
		return nil, apperr.Persistence("failed to load message")
	}
	return &msg, nil
}

// ListMessages returns the conversation between two users in insertion
// order. No conversation yet is an empty list, not an error.
func (s *ConversationStore) ListMessages(userA, userB string) ([]models.Message, error) {
	var conv models.Conversation
	err := s.db.Where("pair_key = ?", models.PairKeyFor(userA, userB)).First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []models.Message{}, nil
	}
	if err != nil {
		return nil, apperr.Persistence("failed to load conversation")
	}

	var messages []models.Message
	err = s.db.Where("conversation_id = ?", conv.ID).
		Order("created_at asc").Order("id asc").
		Preload("Sender").Preload("Receiver").
		Find(&messages).Error
	if err != nil {
		return nil, apperr.Persistence("failed to load messages")
	}
	return messages, nil
}

// RecentConversations lists a user's threads most-recently-updated first,
// surfacing the counterpart user for each.
func (s *ConversationStore) RecentConversations(userID string) ([]RecentConversation, error) {
	var convs []models.Conversation
	err := s.db.Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("updated_at desc").
		Find(&convs).Error
	if err != nil {
		return nil, apperr.Persistence("failed to load conversations")
	}

	counterpartIDs := make([]string, 0, len(convs))
	for _, c := range convs {
		counterpartIDs = append(counterpartIDs, c.CounterpartID(userID))
	}

	usersByID := make(map[string]models.User, len(counterpartIDs))
	if len(counterpartIDs) > 0 {
		var users []models.User
		if err := s.db.Where("id IN ?", counterpartIDs).Find(&users).Error; err != nil {
			return nil, apperr.Persistence("failed to load users")
		}
		for _, u := range users {
			usersByID[u.ID] = u
		}
	}

	recent := make([]RecentConversation, 0, len(convs))
	for _, c := range convs {
		u, ok := usersByID[c.CounterpartID(userID)]
		if !ok {
			continue
		}
		recent = append(recent, RecentConversation{
			ConversationID: c.ID,
			User:           u.Public(),
			LastUpdated:    c.UpdatedAt,
		})
	}
	return recent, nil
}

func (s *ConversationStore) usersExist(ids ...string) error {
	distinct := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		distinct[id] = struct{}{}
	}
	unique := make([]string, 0, len(distinct))
	for id := range distinct {
		unique = append(unique, id)
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("id IN ?", unique).Count(&count).Error; err != nil {
		return apperr.Persistence("failed to look up users")
	}
	if count != int64(len(unique)) {
		return apperr.NotFound("user not found")
	}
	return nil
}
