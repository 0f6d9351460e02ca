package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/open-nie/events-backend/models"
)

var DB *gorm.DB

// Connect opens the postgres connection and keeps the shared handle in DB.
func Connect(dsn string) error {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return err
	}
	DB = db
	return nil
}

// Migrate auto-migrates every model. Registration carries the composite
// unique index on (event_id, user_id) that makes the duplicate-registration
// guard authoritative under concurrent requests.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Registration{},
		&models.Notification{},
		&models.ProposedEvent{},
		&models.Vote{},
		&models.Feedback{},
	)
}
