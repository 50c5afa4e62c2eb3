package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kunalgarg108/ShareSpace/pkg/apperr"
	"github.com/Kunalgarg108/ShareSpace/pkg/logger"
)

// fail maps an error to its HTTP response. Classified errors carry their own
// status; anything else is an opaque 500.
func fail(c *gin.Context, err error) {
	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}
	logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled handler error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}

// currentUserID reads the authenticated user set by the auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID.(string), true
}
