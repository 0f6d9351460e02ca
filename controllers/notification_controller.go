package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/open-nie/events-backend/database"
	"github.com/open-nie/events-backend/models"
)

type notificationRow struct {
	ID         uint      `json:"id"`
	EventID    uint      `json:"event_id"`
	Message    string    `json:"message"`
	Type       string    `json:"type"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
	EventTitle string    `json:"event_title"`
}

// GetNotifications returns the user's 50 most recent notifications.
func GetNotifications(c *gin.Context) {
	var notifications []notificationRow
	err := database.DB.
		Table("notifications AS n").
		Select("n.id, n.event_id, n.message, n.type, n.read, n.created_at, e.title AS event_title").
		Joins("LEFT JOIN events e ON n.event_id = e.id").
		Where("n.user_id = ?", c.GetUint("user_id")).
		Order("n.created_at DESC").
		Limit(50).
		Scan(&notifications).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if notifications == nil {
		notifications = []notificationRow{}
	}
	c.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead marks one of the user's notifications as read.
func MarkNotificationRead(c *gin.Context) {
	err := database.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", c.Param("id"), c.GetUint("user_id")).
		Update("read", true).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
