package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Kunalgarg108/ShareSpace/internal/handlers"
	"github.com/Kunalgarg108/ShareSpace/internal/middleware"
)

func RegisterNotificationRoutes(r gin.IRouter, h *handlers.NotificationsHandler) {
	n := r.Group("/notifications")
	n.Use(middleware.AuthMiddleware())
	{
		n.GET("", h.GetNotifications)
		n.GET("/unread-count", h.GetUnreadCount)
		n.PUT("/read-all", h.MarkAllNotificationsRead)
	}
}
