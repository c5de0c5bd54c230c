package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"project/backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Topic{},
		&models.Problem{},
		&models.Progress{},
		&models.PlatformSnapshot{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedTopic(t *testing.T, db *gorm.DB, title, slug string) models.Topic {
	t.Helper()
	topic := models.Topic{Title: title, Slug: slug, Difficulty: "beginner"}
	if err := db.Create(&topic).Error; err != nil {
		t.Fatalf("seed topic: %v", err)
	}
	return topic
}

func seedProblem(t *testing.T, db *gorm.DB, topicID uint, title, slug, difficulty string) models.Problem {
	t.Helper()
	problem := models.Problem{TopicID: topicID, Title: title, Slug: slug, Difficulty: difficulty}
	if err := db.Create(&problem).Error; err != nil {
		t.Fatalf("seed problem: %v", err)
	}
	return problem
}

func seedProgress(t *testing.T, db *gorm.DB, userID, problemID uint, status string, timeSpent int, lastAttempt time.Time) models.Progress {
	t.Helper()
	progress := models.Progress{
		UserID:          userID,
		ProblemID:       problemID,
		Status:          status,
		TimeSpent:       timeSpent,
		Attempts:        1,
		LastAttemptDate: lastAttempt,
	}
	if status == models.StatusCompleted {
		progress.CompletedDate = &lastAttempt
	}
	if err := db.Create(&progress).Error; err != nil {
		t.Fatalf("seed progress: %v", err)
	}
	return progress
}
