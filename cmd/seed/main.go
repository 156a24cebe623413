package main

import (
	"fmt"

	"warbler/internal/model"
	"warbler/pkg/config"
	"warbler/pkg/database"
	"warbler/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	testUsers := []struct {
		username string
		email    string
		password string
		bio      string
	}{
		{"tuckerdiane", "tuckerdiane@test.com", "password123", "Amateur birder."},
		{"curtisross", "curtisross@test.com", "password123", "Chirping into the void."},
		{"johnsonamy", "johnsonamy@test.com", "password123", ""},
		{"davisjordan", "davisjordan@test.com", "password123", "All warble, no bite."},
	}

	userIDs := make([]string, 0, len(testUsers))

	for _, userData := range testUsers {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(userData.password), bcrypt.DefaultCost)

		user := &model.UserModel{
			Username: userData.username,
			Email:    userData.email,
			Password: string(hashedPassword),
			ImageURL: "/static/images/default-pic.png",
			Bio:      userData.bio,
		}

		var existingUser model.UserModel
		result := db.Where("email = ? OR username = ?", user.Email, user.Username).First(&existingUser)
		if result.Error == nil {
			log.Info("User %s already exists, skipping", user.Username)
			userIDs = append(userIDs, existingUser.ID)
			continue
		}

		if err := db.Create(user).Error; err != nil {
			log.Error("Failed to create user %s: %v", user.Username, err)
			continue
		}

		log.Info("Created user: %s (%s)", user.Username, user.Email)
		userIDs = append(userIDs, user.ID)
	}

	if len(userIDs) < 2 {
		return fmt.Errorf("not enough users to seed messages and follows")
	}

	texts := []string{
		"Just saw a cedar waxwing outside my window!",
		"Hot take: mornings are overrated.",
		"Anyone else hear that mockingbird at 3am?",
		"New to Warbler, say hi!",
		"Coffee first, warbling second.",
	}

	for i, text := range texts {
		message := &model.MessageModel{
			UserID: userIDs[i%len(userIDs)],
			Text:   text,
		}
		if err := db.Create(message).Error; err != nil {
			log.Error("Failed to create message: %v", err)
		}
	}

	// Everyone follows the first user, and the first user follows back
	for _, id := range userIDs[1:] {
		follows := []*model.FollowModel{
			{FollowerID: id, FolloweeID: userIDs[0]},
			{FollowerID: userIDs[0], FolloweeID: id},
		}
		for _, follow := range follows {
			var existing model.FollowModel
			if db.Where("follower_id = ? AND followee_id = ?", follow.FollowerID, follow.FolloweeID).First(&existing).Error == nil {
				continue
			}
			if err := db.Create(follow).Error; err != nil {
				log.Error("Failed to create follow: %v", err)
			}
		}
	}

	return nil
}
