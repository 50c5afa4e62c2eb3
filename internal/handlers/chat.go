package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kunalgarg108/ShareSpace/internal/moderation"
	"github.com/Kunalgarg108/ShareSpace/internal/models"
	"github.com/Kunalgarg108/ShareSpace/internal/notify"
	"github.com/Kunalgarg108/ShareSpace/internal/realtime"
	"github.com/Kunalgarg108/ShareSpace/internal/store"
)

type ChatHandler struct {
	store      *store.ConversationStore
	notifier   *notify.Service
	hub        *realtime.Hub
	classifier *moderation.Classifier
}

func NewChatHandler(s *store.ConversationStore, n *notify.Service, h *realtime.Hub, m *moderation.Classifier) *ChatHandler {
	return &ChatHandler{store: s, notifier: n, hub: h, classifier: m}
}

type sendMessageRequest struct {
	RecipientID string `json:"recipientId" binding:"required"`
	Text        string `json:"text"`
}

// SendMessage POST /messages
//
// The message is durable before anything else happens; the live push and the
// notification fan-out ride on success and can fail without undoing it.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	senderID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipientId is required"})
		return
	}

	if err := h.classifier.Check(c.Request.Context(), req.Text); err != nil {
		fail(c, err)
		return
	}

	msg, err := h.store.AppendMessage(senderID, req.RecipientID, req.Text)
	if err != nil {
		fail(c, err)
		return
	}

	h.hub.PushToUser(req.RecipientID, "new_message", msg)
	h.notifier.NotifyOnAction(req.RecipientID, senderID, models.NotificationTypeMessage, nil, "sent you a message.")

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// GetMessages GET /messages?userId=...
func (h *ChatHandler) GetMessages(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	otherID := c.Query("userId")
	if otherID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId query parameter is required"})
		return
	}

	messages, err := h.store.ListMessages(userID, otherID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// GetConversations GET /conversations
func (h *ChatHandler) GetConversations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	conversations, err := h.store.RecentConversations(userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}
