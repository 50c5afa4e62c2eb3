package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kunalgarg108/ShareSpace/internal/models"
)

func TestNotificationFeedEndpoints(t *testing.T) {
	env := setupTest(t)
	h := env.notificationsHandler()
	recipient := createUser(t, env.db, "recipient")
	actor := createUser(t, env.db, "actor")

	env.notifier.NotifyOnAction(recipient.ID, actor.ID, models.NotificationTypeFollow, nil, "started following you.")
	env.notifier.NotifyOnAction(recipient.ID, actor.ID, models.NotificationTypeMessage, nil, "sent you a message.")

	c, w := newTestContext(t, http.MethodGet, "/api/notifications", recipient.ID, nil)
	h.GetNotifications(c)

	require.Equal(t, http.StatusOK, w.Code)
	notifications := decodeBody(t, w)["notifications"].([]interface{})
	require.Len(t, notifications, 2)
	newest := notifications[0].(map[string]interface{})
	assert.Equal(t, "message", newest["type"])
	assert.Equal(t, "actor", newest["actor"].(map[string]interface{})["username"])

	c, w = newTestContext(t, http.MethodGet, "/api/notifications/unread-count", recipient.ID, nil)
	h.GetUnreadCount(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decodeBody(t, w)["count"])

	c, w = newTestContext(t, http.MethodPut, "/api/notifications/read-all", recipient.ID, nil)
	h.MarkAllNotificationsRead(c)
	require.Equal(t, http.StatusOK, w.Code)

	c, w = newTestContext(t, http.MethodGet, "/api/notifications/unread-count", recipient.ID, nil)
	h.GetUnreadCount(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeBody(t, w)["count"])
}

func TestNotificationEndpointsRequireAuth(t *testing.T) {
	env := setupTest(t)
	h := env.notificationsHandler()

	c, w := newTestContext(t, http.MethodGet, "/api/notifications", "", nil)
	h.GetNotifications(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
