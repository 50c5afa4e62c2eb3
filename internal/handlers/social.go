package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kunalgarg108/ShareSpace/internal/models"
	"github.com/Kunalgarg108/ShareSpace/internal/notify"
	"github.com/Kunalgarg108/ShareSpace/internal/store"
)

type SocialHandler struct {
	social   *store.SocialStore
	notifier *notify.Service
}

func NewSocialHandler(s *store.SocialStore, n *notify.Service) *SocialHandler {
	return &SocialHandler{social: s, notifier: n}
}

// FollowUser POST /users/:id/follow
//
// Toggles; the target only hears about new follows, not unfollows.
func (h *SocialHandler) FollowUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	targetID := c.Param("id")

	applied, err := h.social.ToggleFollow(userID, targetID)
	if err != nil {
		fail(c, err)
		return
	}

	if applied {
		h.notifier.NotifyOnAction(targetID, userID, models.NotificationTypeFollow, nil, "started following you.")
	}

	c.JSON(http.StatusOK, gin.H{"following": applied})
}

// GetFollowers GET /users/:id/followers
func (h *SocialHandler) GetFollowers(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	followers, err := h.social.ListFollowers(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"followers": followers})
}

// GetFollowing GET /users/:id/following
func (h *SocialHandler) GetFollowing(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	following, err := h.social.ListFollowing(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": following})
}
