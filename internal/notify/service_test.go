package notify

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Kunalgarg108/ShareSpace/internal/models"
)

type fakePusher struct {
	mu     sync.Mutex
	pushes []pushedEvent
}

type pushedEvent struct {
	userID string
	event  string
}

func (f *fakePusher) PushToUser(userID, event string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushes = append(f.pushes, pushedEvent{userID: userID, event: event})
}

func (f *fakePusher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pushes)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}, &models.Notification{}))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{ID: uuid.New().String(), Username: username, Email: username + "@example.com"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestSelfActionNeverNotifies(t *testing.T) {
	db := setupTestDB(t)
	pusher := &fakePusher{}
	svc := NewService(db, pusher)
	u := createUser(t, db, "solo")

	svc.NotifyOnAction(u.ID, u.ID, models.NotificationTypeLike, nil, "liked your post.")

	var count int64
	db.Model(&models.Notification{}).Count(&count)
	assert.Zero(t, count)
	assert.Zero(t, pusher.count())
}

func TestNotifyPersistsAndPushes(t *testing.T) {
	db := setupTestDB(t)
	pusher := &fakePusher{}
	svc := NewService(db, pusher)
	recipient := createUser(t, db, "recipient")
	actor := createUser(t, db, "actor")

	svc.NotifyOnAction(recipient.ID, actor.ID, models.NotificationTypeFollow, nil, "started following you.")

	var stored models.Notification
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, recipient.ID, stored.UserID)
	assert.Equal(t, actor.ID, stored.ActorID)
	assert.Equal(t, models.NotificationTypeFollow, stored.Type)
	assert.False(t, stored.IsRead)

	require.Equal(t, 1, pusher.count())
	assert.Equal(t, "notification", pusher.pushes[0].event)
	assert.Equal(t, recipient.ID, pusher.pushes[0].userID)
}

func TestListNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, &fakePusher{})
	recipient := createUser(t, db, "recipient")
	actor := createUser(t, db, "actor")

	svc.NotifyOnAction(recipient.ID, actor.ID, models.NotificationTypeFollow, nil, "started following you.")
	svc.NotifyOnAction(recipient.ID, actor.ID, models.NotificationTypeMessage, nil, "sent you a message.")

	list, err := svc.List(recipient.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, models.NotificationTypeMessage, list[0].Type)
	assert.Equal(t, "actor", list[0].Actor.Username)
}

func TestUnreadCountAndMarkAllRead(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, &fakePusher{})
	recipient := createUser(t, db, "recipient")
	actor := createUser(t, db, "actor")
	bystander := createUser(t, db, "bystander")

	svc.NotifyOnAction(recipient.ID, actor.ID, models.NotificationTypeFollow, nil, "started following you.")
	svc.NotifyOnAction(recipient.ID, actor.ID, models.NotificationTypeMessage, nil, "sent you a message.")
	svc.NotifyOnAction(bystander.ID, actor.ID, models.NotificationTypeFollow, nil, "started following you.")

	count, err := svc.UnreadCount(recipient.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, svc.MarkAllRead(recipient.ID))

	var unread int64
	db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", recipient.ID, false).
		Count(&unread)
	assert.Zero(t, unread)

	// Other recipients are untouched, and re-running is harmless.
	bcount, err := svc.UnreadCount(bystander.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), bcount)
	require.NoError(t, svc.MarkAllRead(recipient.ID))
}
