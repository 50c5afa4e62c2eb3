package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Kunalgarg108/ShareSpace/internal/handlers"
	"github.com/Kunalgarg108/ShareSpace/internal/middleware"
)

func RegisterChatRoutes(r gin.IRouter, h *handlers.ChatHandler) {
	chat := r.Group("/")
	chat.Use(middleware.AuthMiddleware())
	{
		chat.POST("/messages", middleware.ChatRateLimit(), h.SendMessage)
		chat.GET("/messages", h.GetMessages) // ?userId=...
		chat.GET("/conversations", h.GetConversations)
	}
}
