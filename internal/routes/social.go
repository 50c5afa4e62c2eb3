package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Kunalgarg108/ShareSpace/internal/handlers"
	"github.com/Kunalgarg108/ShareSpace/internal/middleware"
)

func RegisterSocialRoutes(r gin.IRouter, posts *handlers.PostsHandler, social *handlers.SocialHandler) {
	p := r.Group("/posts")
	p.Use(middleware.AuthMiddleware())
	{
		p.POST("/:id/like", middleware.EngagementRateLimit(), posts.ToggleLike)
		p.POST("/:id/bookmark", middleware.EngagementRateLimit(), posts.ToggleBookmark)
		p.POST("/:id/comments", middleware.EngagementRateLimit(), posts.AddComment)
		p.GET("/:id/comments", posts.ListComments)
	}

	u := r.Group("/users")
	u.Use(middleware.AuthMiddleware())
	{
		u.POST("/:id/follow", middleware.EngagementRateLimit(), social.FollowUser)
		u.GET("/:id/followers", social.GetFollowers)
		u.GET("/:id/following", social.GetFollowing)
	}
}
