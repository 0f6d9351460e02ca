package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/open-nie/events-backend/database"
	"github.com/open-nie/events-backend/models"
)

// ProposeEvent lets an organiser put an event idea up for student voting.
func ProposeEvent(c *gin.Context) {
	var input struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Department  string `json:"department"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Title == "" || input.Description == "" || input.Department == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, c.GetUint("user_id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user data"})
		return
	}
	name := user.Name
	if name == "" {
		name = "Organiser"
	}

	proposal := models.ProposedEvent{
		Title:          input.Title,
		Description:    input.Description,
		Department:     input.Department,
		ProposedByID:   user.ID,
		ProposedByName: name,
	}
	if err := database.DB.Create(&proposal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to propose event"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Event proposed successfully", "id": proposal.ID})
}

type proposalRow struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Department     string    `json:"department"`
	ProposedByID   uint      `json:"proposed_by_id"`
	ProposedByName string    `json:"proposed_by_name"`
	CreatedAt      time.Time `json:"created_at"`
	Upvotes        int64     `json:"upvotes"`
	Downvotes      int64     `json:"downvotes"`
}

// GetProposedEvents lists proposals with aggregated vote counts, newest first.
func GetProposedEvents(c *gin.Context) {
	var proposals []proposalRow
	err := database.DB.
		Table("proposed_events AS p").
		Select(`p.id, p.title, p.description, p.department, p.proposed_by_id, p.proposed_by_name, p.created_at,
			COALESCE(SUM(CASE WHEN v.vote_type = 'up' THEN 1 ELSE 0 END), 0) AS upvotes,
			COALESCE(SUM(CASE WHEN v.vote_type = 'down' THEN 1 ELSE 0 END), 0) AS downvotes`).
		Joins("LEFT JOIN votes v ON p.id = v.proposed_event_id").
		Group("p.id, p.title, p.description, p.department, p.proposed_by_id, p.proposed_by_name, p.created_at").
		Order("p.created_at DESC").
		Scan(&proposals).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch proposed events"})
		return
	}
	if proposals == nil {
		proposals = []proposalRow{}
	}
	c.JSON(http.StatusOK, proposals)
}

// CastVote records a student's vote on a proposal. Voting the same way twice
// removes the vote; voting the other way flips it. At most one vote per
// (student, proposal) pair.
func CastVote(c *gin.Context) {
	var input struct {
		ProposedEventID uint   `json:"proposed_event_id"`
		VoteType        string `json:"vote_type"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.ProposedEventID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "proposed_event_id is required"})
		return
	}
	if input.VoteType != string(models.VoteUp) && input.VoteType != string(models.VoteDown) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vote type"})
		return
	}

	userID := c.GetUint("user_id")

	var existing models.Vote
	err := database.DB.
		Where("proposed_event_id = ? AND user_id = ?", input.ProposedEventID, userID).
		First(&existing).Error
	switch {
	case err == nil && existing.VoteType == models.VoteType(input.VoteType):
		if err := database.DB.Delete(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Vote removed"})
	case err == nil:
		err = database.DB.Model(&existing).Update("vote_type", input.VoteType).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Vote updated"})
	default:
		vote := models.Vote{
			UserID:          userID,
			ProposedEventID: input.ProposedEventID,
			VoteType:        models.VoteType(input.VoteType),
		}
		if err := database.DB.Create(&vote).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Vote recorded"})
	}
}
