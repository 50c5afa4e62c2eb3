package store

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Kunalgarg108/ShareSpace/internal/models"
)

// setupTestDB opens a per-test in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
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

	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    username + "@example.com",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	return user
}

func createPost(t *testing.T, db *gorm.DB, authorID string) models.Post {
	t.Helper()
	post := models.Post{
		ID:       uuid.New().String(),
		AuthorID: authorID,
		Caption:  "test post",
	}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}
	return post
}
