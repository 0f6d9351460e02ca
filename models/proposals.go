package models

import (
	"time"
)

type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

// ProposedEvent is an event idea put up by an organiser for students to vote on.
// ProposedByName is denormalized so proposals stay readable if the proposer leaves.
type ProposedEvent struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	Description    string    `gorm:"type:text;not null" json:"description"`
	Department     string    `gorm:"size:255;not null" json:"department"`
	ProposedByID   uint      `gorm:"not null" json:"proposed_by_id"`
	ProposedByName string    `gorm:"size:255;not null" json:"proposed_by_name"`
	CreatedAt      time.Time `json:"created_at"`
}

type Vote struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;uniqueIndex:idx_votes_user_proposal" json:"user_id"`
	ProposedEventID uint      `gorm:"not null;uniqueIndex:idx_votes_user_proposal" json:"proposed_event_id"`
	VoteType        VoteType  `gorm:"size:8;not null" json:"vote_type"`
	CreatedAt       time.Time `json:"created_at"`
}
