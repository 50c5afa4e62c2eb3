package main

import (
	"log"

	"github.com/Kunalgarg108/ShareSpace/internal/config"
	"github.com/Kunalgarg108/ShareSpace/internal/database"
	"github.com/Kunalgarg108/ShareSpace/internal/models"
	"github.com/Kunalgarg108/ShareSpace/internal/seeds"
)

func main() {
	config.LoadConfig()
	database.Connect()

	log.Println("Running migrations (just in case)...")
	database.DB.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.PostLike{},
		&models.Bookmark{},
		&models.UserFollow{},
		&models.Conversation{},
		&models.Message{},
		&models.Notification{},
	)

	if _, err := seeds.GetOrCreateSystemUser(); err != nil {
		log.Fatalf("Failed to ensure system user: %v", err)
	}

	users := seeds.SeedDemoUsers()
	seeds.SeedDemoPosts(users)

	log.Println("Seeding Complete!")
}
