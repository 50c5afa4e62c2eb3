package seeds

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Kunalgarg108/ShareSpace/internal/database"
	"github.com/Kunalgarg108/ShareSpace/internal/models"
)

func GetOrCreateSystemUser() (models.User, error) {
	log.Println("Checking System User...")

	username := "sharespace"
	email := "official@sharespace.app"

	var user models.User
	err := database.DB.Where("username = ?", username).First(&user).Error

	if err == nil {
		log.Printf("   System User found: %s", user.Username)
		return user, nil
	}

	user = models.User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    email,
		Bio:      "Official ShareSpace account. Announcements and tips.",
		Avatar:   "https://api.dicebear.com/7.x/identicon/svg?seed=sharespace",
	}

	if err := database.DB.Create(&user).Error; err != nil {
		return models.User{}, err
	}

	log.Printf("   System User Created: %s", user.Username)
	return user, nil
}

// SeedDemoUsers creates a small cast of users for local development.
// Existing usernames are left untouched.
func SeedDemoUsers() []models.User {
	log.Println("Seeding Demo Users...")

	demo := []models.User{
		{Username: "asha", Email: "asha@example.com", Bio: "Travel photos and street food."},
		{Username: "rohan", Email: "rohan@example.com", Bio: "Runner. Occasional poster."},
		{Username: "meera", Email: "meera@example.com", Bio: "Sketches, mostly."},
	}

	created := make([]models.User, 0, len(demo))
	for _, u := range demo {
		var existing models.User
		if err := database.DB.Where("username = ?", u.Username).First(&existing).Error; err == nil {
			created = append(created, existing)
			continue
		}

		u.ID = uuid.New().String()
		u.Avatar = "https://api.dicebear.com/7.x/avataaars/svg?seed=" + u.Username
		if err := database.DB.Create(&u).Error; err != nil {
			log.Printf("   Failed to create user %s: %v", u.Username, err)
			continue
		}
		log.Printf("   User Added: %s", u.Username)
		created = append(created, u)
	}
	return created
}

// SeedDemoPosts gives each demo user one post to like and comment on.
func SeedDemoPosts(users []models.User) []models.Post {
	log.Println("Seeding Demo Posts...")

	captions := []string{
		"Sunset from the east ridge.",
		"Negative splits, finally.",
		"Quick pen study before work.",
	}

	posts := make([]models.Post, 0, len(users))
	for i, u := range users {
		post := models.Post{
			ID:       uuid.New().String(),
			AuthorID: u.ID,
			Caption:  captions[i%len(captions)],
			Image:    "https://picsum.photos/seed/" + u.Username + "/800/600",
		}
		post.CreatedAt = time.Now().Add(-time.Duration(i+1) * time.Hour)
		if err := database.DB.Create(&post).Error; err != nil {
			log.Printf("   Failed to create post for %s: %v", u.Username, err)
			continue
		}
		log.Printf("   Post Added: %s", post.Caption)
		posts = append(posts, post)
	}
	return posts
}
