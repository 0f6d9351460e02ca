package models

import (
	"time"
)

type UserRole string

const (
	RoleStudent   UserRole = "student"
	RoleOrganiser UserRole = "organiser"
)

type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Email      string    `gorm:"size:255;unique;not null" json:"email"`
	Password   string    `gorm:"size:255" json:"-"` // Exclude password from JSON
	USN        string    `gorm:"size:64" json:"usn"`
	Department string    `gorm:"size:255" json:"department"`
	Semester   string    `gorm:"size:16" json:"semester"`
	Role       UserRole  `gorm:"size:32;default:'student'" json:"role"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
