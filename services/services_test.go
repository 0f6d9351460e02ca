package services

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/open-nie/events-backend/database"
	"github.com/open-nie/events-backend/logger"
	"github.com/open-nie/events-backend/models"
)

// newTestDB opens a private in-memory database. The pool is capped at one
// connection so the single sqlite handle is shared and writers serialize.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func newServices(t *testing.T) (*gorm.DB, *RegistrationService, *CheckinService) {
	t.Helper()
	db := newTestDB(t)
	log := logger.NewNop()
	notifier := NewNotifier(db, log)
	return db, NewRegistrationService(db, log, notifier), NewCheckinService(db, log)
}

func createStudent(t *testing.T, db *gorm.DB, n int) models.User {
	t.Helper()
	user := models.User{
		Name:     fmt.Sprintf("Student %d", n),
		Email:    fmt.Sprintf("student%d@nie.ac.in", n),
		USN:      fmt.Sprintf("4NI21CS%03d", n),
		Semester: "5",
		Role:     models.RoleStudent,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create student: %v", err)
	}
	return user
}

func createOrganiser(t *testing.T, db *gorm.DB, n int) models.User {
	t.Helper()
	user := models.User{
		Name:       fmt.Sprintf("Organiser %d", n),
		Email:      fmt.Sprintf("organiser%d@nie.ac.in", n),
		Department: "CSE",
		Role:       models.RoleOrganiser,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create organiser: %v", err)
	}
	return user
}

func createEvent(t *testing.T, db *gorm.DB, owner uint, capacity *int) models.Event {
	t.Helper()
	event := models.Event{
		Title:           "Tech Talk",
		Description:     "A talk",
		Date:            "2026-09-15",
		Time:            "14:00",
		Department:      "CSE",
		CreatedBy:       owner,
		MaxParticipants: capacity,
		Status:          models.EventActive,
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("failed to create event: %v", err)
	}
	return event
}

func intPtr(n int) *int { return &n }
