package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/open-nie/events-backend/database"
	"github.com/open-nie/events-backend/models"
)

// SubmitFeedback records a rating and comment from a student who attended
// the event. One feedback entry per (event, student).
func SubmitFeedback(c *gin.Context) {
	var input struct {
		EventID uint   `json:"event_id"`
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.EventID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event_id is required"})
		return
	}
	if input.Rating < 1 || input.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
		return
	}

	userID := c.GetUint("user_id")

	var attended int64
	err := database.DB.Model(&models.Registration{}).
		Where("event_id = ? AND user_id = ? AND checked_in = ?", input.EventID, userID, true).
		Count(&attended).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if attended == 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only attendees can leave feedback"})
		return
	}

	feedback := models.Feedback{
		EventID: input.EventID,
		UserID:  userID,
		Rating:  input.Rating,
		Comment: input.Comment,
	}
	if err := database.DB.Create(&feedback).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate key") {
			c.JSON(http.StatusConflict, gin.H{"error": "Feedback already submitted for this event"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit feedback"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Feedback submitted successfully", "id": feedback.ID})
}

type feedbackRow struct {
	ID        uint      `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
}

// GetEventFeedback lists feedback for an event with the average rating.
func GetEventFeedback(c *gin.Context) {
	eventID := c.Param("id")

	var rows []feedbackRow
	err := database.DB.
		Table("feedback AS f").
		Select("f.id, f.rating, f.comment, f.created_at, u.name").
		Joins("JOIN users u ON f.user_id = u.id").
		Where("f.event_id = ?", eventID).
		Order("f.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if rows == nil {
		rows = []feedbackRow{}
	}

	var avg float64
	if len(rows) > 0 {
		total := 0
		for _, r := range rows {
			total += r.Rating
		}
		avg = float64(total) / float64(len(rows))
	}

	c.JSON(http.StatusOK, gin.H{"feedback": rows, "average_rating": avg, "count": len(rows)})
}
