package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kunalgarg108/ShareSpace/internal/models"
)

func TestFollowUserNotifiesTarget(t *testing.T) {
	env := setupTest(t)
	h := env.socialHandler()
	follower := createUser(t, env.db, "follower")
	target := createUser(t, env.db, "target")

	c, w := newTestContext(t, http.MethodPost, "/api/users/"+target.ID+"/follow", follower.ID, nil)
	c.Params = gin.Params{{Key: "id", Value: target.ID}}
	h.FollowUser(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["following"])

	var notif models.Notification
	require.NoError(t, env.db.First(&notif).Error)
	assert.Equal(t, target.ID, notif.UserID)
	assert.Equal(t, models.NotificationTypeFollow, notif.Type)

	// Unfollow flips state and stays silent.
	c, w = newTestContext(t, http.MethodPost, "/api/users/"+target.ID+"/follow", follower.ID, nil)
	c.Params = gin.Params{{Key: "id", Value: target.ID}}
	h.FollowUser(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["following"])

	var count int64
	env.db.Model(&models.Notification{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSelfFollowRejectedAtEndpoint(t *testing.T) {
	env := setupTest(t)
	h := env.socialHandler()
	u := createUser(t, env.db, "narcissus")

	c, w := newTestContext(t, http.MethodPost, "/api/users/"+u.ID+"/follow", u.ID, nil)
	c.Params = gin.Params{{Key: "id", Value: u.ID}}
	h.FollowUser(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFollowUnknownTarget(t *testing.T) {
	env := setupTest(t)
	h := env.socialHandler()
	follower := createUser(t, env.db, "follower")

	c, w := newTestContext(t, http.MethodPost, "/api/users/missing/follow", follower.ID, nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	h.FollowUser(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFollowerAndFollowingLists(t *testing.T) {
	env := setupTest(t)
	h := env.socialHandler()
	follower := createUser(t, env.db, "follower")
	target := createUser(t, env.db, "target")

	c, w := newTestContext(t, http.MethodPost, "/api/users/"+target.ID+"/follow", follower.ID, nil)
	c.Params = gin.Params{{Key: "id", Value: target.ID}}
	h.FollowUser(c)
	require.Equal(t, http.StatusOK, w.Code)

	c, w = newTestContext(t, http.MethodGet, "/api/users/"+target.ID+"/followers", follower.ID, nil)
	c.Params = gin.Params{{Key: "id", Value: target.ID}}
	h.GetFollowers(c)

	require.Equal(t, http.StatusOK, w.Code)
	followers := decodeBody(t, w)["followers"].([]interface{})
	require.Len(t, followers, 1)
	assert.Equal(t, "follower", followers[0].(map[string]interface{})["username"])

	c, w = newTestContext(t, http.MethodGet, "/api/users/"+follower.ID+"/following", follower.ID, nil)
	c.Params = gin.Params{{Key: "id", Value: follower.ID}}
	h.GetFollowing(c)

	require.Equal(t, http.StatusOK, w.Code)
	following := decodeBody(t, w)["following"].([]interface{})
	require.Len(t, following, 1)
	assert.Equal(t, "target", following[0].(map[string]interface{})["username"])
}
