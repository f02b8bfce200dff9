package services

import (
	"fmt"
	"testing"
	"time"

	"hackhub-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupDB opens a per-test in-memory database with foreign keys enforced,
// migrated to the full schema.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.EventRegistration{},
		&models.LeaderboardEntry{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func makeUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	user := &models.User{
		ID:    uuid.NewString(),
		Email: uuid.NewString() + "@example.com",
		Role:  role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// makeEvent creates an upcoming event open for registration; mutate can
// adjust it before insert.
func makeEvent(t *testing.T, db *gorm.DB, organizerID string, mutate func(*models.Event)) *models.Event {
	t.Helper()
	now := time.Now()
	event := &models.Event{
		ID:                   uuid.NewString(),
		Title:                "Test Hackathon",
		Description:          "A test hackathon",
		Slug:                 "test-hackathon-" + uuid.NewString()[:8],
		OrganizerID:          organizerID,
		Status:               models.EventStatusUpcoming,
		StartDate:            now.Add(48 * time.Hour),
		EndDate:              now.Add(72 * time.Hour),
		RegistrationDeadline: now.Add(24 * time.Hour),
		Resources:            models.ResourceList{},
		Tags:                 models.StringList{},
		IsPublic:             true,
		AllowTeams:           true,
		MaxTeamSize:          4,
	}
	if mutate != nil {
		mutate(event)
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("create event: %v", err)
	}
	return event
}

func eventCounter(t *testing.T, db *gorm.DB, eventID string) int {
	t.Helper()
	var event models.Event
	if err := db.First(&event, "id = ?", eventID).Error; err != nil {
		t.Fatalf("reload event: %v", err)
	}
	return event.CurrentParticipants
}

func intPtr(n int) *int { return &n }
