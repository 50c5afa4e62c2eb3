package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kunalgarg108/ShareSpace/internal/notify"
)

type NotificationsHandler struct {
	notifier *notify.Service
}

func NewNotificationsHandler(n *notify.Service) *NotificationsHandler {
	return &NotificationsHandler{notifier: n}
}

// GetNotifications GET /notifications
func (h *NotificationsHandler) GetNotifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	notifications, err := h.notifier.List(userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// GetUnreadCount GET /notifications/unread-count
func (h *NotificationsHandler) GetUnreadCount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	count, err := h.notifier.UnreadCount(userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkAllNotificationsRead PUT /notifications/read-all
func (h *NotificationsHandler) MarkAllNotificationsRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.notifier.MarkAllRead(userID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All marked as read"})
}
