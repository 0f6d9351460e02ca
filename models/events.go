package models

import (
	"time"
)

type EventStatus string

const (
	EventActive    EventStatus = "active"
	EventCancelled EventStatus = "cancelled"
	EventCompleted EventStatus = "completed"
)

type Event struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	Title           string      `gorm:"size:255;not null" json:"title"`
	Description     string      `gorm:"type:text" json:"description"`
	Date            string      `gorm:"size:32;not null" json:"date"` // YYYY-MM-DD
	Time            string      `gorm:"size:16;not null" json:"time"` // HH:MM
	Location        string      `gorm:"size:255" json:"location"`
	Department      string      `gorm:"size:255;not null" json:"department"`
	CreatedBy       uint        `gorm:"not null" json:"created_by"`
	Image           string      `gorm:"size:512" json:"image"`
	MaxParticipants *int        `json:"max_participants"` // nil means unlimited
	Status          EventStatus `gorm:"size:32;default:'active'" json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`

	// Relationships
	Organiser     User           `gorm:"foreignKey:CreatedBy" json:"organiser,omitempty"`
	Registrations []Registration `gorm:"foreignKey:EventID" json:"registrations,omitempty"`
}
