package models

import (
	"time"
)

type NotificationType string

const (
	NotifRegistration        NotificationType = "registration"
	NotifRegistrationStudent NotificationType = "registration_student"
	NotifNewEvent            NotificationType = "new_event"
)

type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"not null;index" json:"user_id"`
	EventID   uint             `gorm:"not null" json:"event_id"`
	Message   string           `gorm:"type:text;not null" json:"message"`
	Type      NotificationType `gorm:"size:64;not null" json:"type"`
	Read      bool             `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
