package models

import (
	"time"
)

// Registration binds a student to an event. The QRCode column holds the opaque
// check-in token issued at registration time; possession of that token is the
// credential presented at the scan station. USN and Semester are snapshots of
// the student's profile taken when the registration was created.
type Registration struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	EventID          uint      `gorm:"not null;uniqueIndex:idx_registrations_event_user" json:"event_id"`
	UserID           uint      `gorm:"not null;uniqueIndex:idx_registrations_event_user" json:"user_id"`
	QRCode           string    `gorm:"size:64;not null;uniqueIndex" json:"qr_code"`
	CheckedIn        bool      `gorm:"not null;default:false" json:"checked_in"`
	USN              string    `gorm:"size:64" json:"usn"`
	Semester         string    `gorm:"size:16" json:"semester"`
	RegistrationDate time.Time `gorm:"not null" json:"registration_date"`

	// Relationships
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Event Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}
