package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kunalgarg108/ShareSpace/internal/moderation"
	"github.com/Kunalgarg108/ShareSpace/internal/models"
	"github.com/Kunalgarg108/ShareSpace/internal/notify"
	"github.com/Kunalgarg108/ShareSpace/internal/store"
)

type PostsHandler struct {
	social     *store.SocialStore
	notifier   *notify.Service
	classifier *moderation.Classifier
}

func NewPostsHandler(s *store.SocialStore, n *notify.Service, m *moderation.Classifier) *PostsHandler {
	return &PostsHandler{social: s, notifier: n, classifier: m}
}

// ToggleLike POST /posts/:id/like
//
// Fan-out fires only on the off->on edge; unliking is silent.
func (h *PostsHandler) ToggleLike(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	postID := c.Param("id")

	applied, post, err := h.social.ToggleLike(userID, postID)
	if err != nil {
		fail(c, err)
		return
	}

	likesCount := post.LikesCount
	if applied {
		likesCount++
		h.notifier.NotifyOnAction(post.AuthorID, userID, models.NotificationTypeLike, &postID, "liked your post.")
	} else {
		likesCount--
	}

	c.JSON(http.StatusOK, gin.H{"liked": applied, "likesCount": likesCount})
}

// ToggleBookmark POST /posts/:id/bookmark
//
// Bookmarks are private to the actor, so no notification ever fires.
func (h *PostsHandler) ToggleBookmark(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	postID := c.Param("id")

	applied, err := h.social.ToggleBookmark(userID, postID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookmarked": applied})
}

type addCommentRequest struct {
	Text string `json:"text"`
}

// AddComment POST /posts/:id/comments
func (h *PostsHandler) AddComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	postID := c.Param("id")

	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.classifier.Check(c.Request.Context(), req.Text); err != nil {
		fail(c, err)
		return
	}

	comment, post, err := h.social.AddComment(userID, postID, req.Text)
	if err != nil {
		fail(c, err)
		return
	}

	h.notifier.NotifyOnAction(post.AuthorID, userID, models.NotificationTypeComment, &postID, "commented on your post.")

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// ListComments GET /posts/:id/comments
func (h *PostsHandler) ListComments(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	postID := c.Param("id")

	comments, err := h.social.ListComments(postID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}
