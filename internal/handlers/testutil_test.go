package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Kunalgarg108/ShareSpace/internal/moderation"
	"github.com/Kunalgarg108/ShareSpace/internal/models"
	"github.com/Kunalgarg108/ShareSpace/internal/notify"
	"github.com/Kunalgarg108/ShareSpace/internal/realtime"
	"github.com/Kunalgarg108/ShareSpace/internal/store"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

type testEnv struct {
	db         *gorm.DB
	hub        *realtime.Hub
	notifier   *notify.Service
	classifier *moderation.Classifier
}

func setupTest(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.PostLike{},
		&models.Bookmark{},
		&models.UserFollow{},
		&models.Conversation{},
		&models.Message{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("Failed to migrate test DB: %v", err)
	}

	hub := realtime.NewHub()
	return &testEnv{
		db:         db,
		hub:        hub,
		notifier:   notify.NewService(db, hub),
		classifier: moderation.NewClassifier("", time.Second),
	}
}

func (e *testEnv) chatHandler() *ChatHandler {
	return NewChatHandler(store.NewConversationStore(e.db), e.notifier, e.hub, e.classifier)
}

func (e *testEnv) postsHandler() *PostsHandler {
	return NewPostsHandler(store.NewSocialStore(e.db), e.notifier, e.classifier)
}

func (e *testEnv) socialHandler() *SocialHandler {
	return NewSocialHandler(store.NewSocialStore(e.db), e.notifier)
}

func (e *testEnv) notificationsHandler() *NotificationsHandler {
	return NewNotificationsHandler(e.notifier)
}

func createUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{ID: uuid.New().String(), Username: username, Email: username + "@example.com"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	return user
}

func createPost(t *testing.T, db *gorm.DB, authorID string) models.Post {
	t.Helper()
	post := models.Post{ID: uuid.New().String(), AuthorID: authorID, Caption: "test post"}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}
	return post
}

// newTestContext builds an authenticated gin context around an optional JSON
// body, mirroring what the auth middleware would have set.
func newTestContext(t *testing.T, method, path, userID string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}
	c.Request = httptest.NewRequest(method, path, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	if userID != "" {
		c.Set("userId", userID)
	}
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}

// testConn is a live-connection stand-in for hub delivery assertions.
type testConn struct {
	id string

	mu     sync.Mutex
	events []string
}

func (c *testConn) ID() string { return c.id }

func (c *testConn) Emit(event string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

func (c *testConn) received(event string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.events {
		if e == event {
			return true
		}
	}
	return false
}
