package controllers

import (
	"fmt"
	"math/rand"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/open-nie/events-backend/database"
	"github.com/open-nie/events-backend/models"
)

type eventListing struct {
	ID              uint               `json:"id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Date            string             `json:"date"`
	Time            string             `json:"time"`
	Location        string             `json:"location"`
	Department      string             `json:"department"`
	CreatedBy       uint               `json:"created_by"`
	Image           string             `json:"image"`
	MaxParticipants *int               `json:"max_participants"`
	Status          models.EventStatus `json:"status"`
	OrganiserName   string             `json:"organiser_name"`
	RegisteredCount int64              `json:"registered_count"`
}

const eventListingColumns = `e.id, e.title, e.description, e.date, e.time, e.location,
	e.department, e.created_by, e.image, e.max_participants, e.status,
	u.name AS organiser_name,
	(SELECT COUNT(*) FROM registrations r WHERE r.event_id = e.id) AS registered_count`

// GetEvents lists events with optional department filter, title search and
// date sorting. Public: no authentication required.
func GetEvents(c *gin.Context) {
	query := database.DB.
		Table("events AS e").
		Select(eventListingColumns).
		Joins("LEFT JOIN users u ON e.created_by = u.id")

	if department := c.Query("department"); department != "" {
		query = query.Where("e.department = ?", department)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("e.title LIKE ?", "%"+search+"%")
	}

	order := "DESC"
	if c.Query("sort") == "asc" {
		order = "ASC"
	}
	query = query.Order(fmt.Sprintf("e.date %s, e.time %s", order, order))

	var events []eventListing
	if err := query.Scan(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to retrieve events"})
		return
	}
	if events == nil {
		events = []eventListing{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": events})
}

// GetEvent retrieves details of a specific event
func GetEvent(c *gin.Context) {
	var event eventListing
	res := database.DB.
		Table("events AS e").
		Select(eventListingColumns).
		Joins("LEFT JOIN users u ON e.created_by = u.id").
		Where("e.id = ?", c.Param("id")).
		Scan(&event)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Event not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": event})
}

// CreateEvent creates an event owned by the requesting organiser. Accepts
// multipart form data with an optional image upload.
func CreateEvent(c *gin.Context) {
	title := c.PostForm("title")
	department := c.PostForm("department")
	date := c.PostForm("date")
	timeOfDay := c.PostForm("time")
	if title == "" || department == "" || date == "" || timeOfDay == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	var maxParticipants *int
	if raw := c.PostForm("max_participants"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "max_participants must be a positive integer"})
			return
		}
		maxParticipants = &n
	}

	imagePath, err := saveEventImage(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	event := models.Event{
		Title:           title,
		Description:     c.PostForm("description"),
		Department:      department,
		Date:            date,
		Time:            timeOfDay,
		Location:        c.PostForm("location"),
		MaxParticipants: maxParticipants,
		CreatedBy:       c.GetUint("user_id"),
		Image:           imagePath,
	}
	if err := database.DB.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error while creating event"})
		return
	}

	// Best-effort broadcast; event creation stands even if this fails.
	message := fmt.Sprintf("New event created: %s on %s at %s", title, date, timeOfDay)
	notifier.BroadcastToStudents(c.Request.Context(), event.ID, message, models.NotifNewEvent)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event created successfully",
		"eventId": event.ID,
		"image":   imagePath,
	})
}

// UpdateEvent applies the provided fields to an event the organiser owns.
func UpdateEvent(c *gin.Context) {
	updates := map[string]interface{}{}
	for _, field := range []string{"title", "description", "department", "date", "time", "location", "status"} {
		if v := c.PostForm(field); v != "" {
			updates[field] = v
		}
	}
	if raw := c.PostForm("max_participants"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "max_participants must be a positive integer"})
			return
		}
		updates["max_participants"] = n
	}
	if imagePath, err := saveEventImage(c); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	} else if imagePath != "" {
		updates["image"] = imagePath
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields provided for update"})
		return
	}

	res := database.DB.Model(&models.Event{}).
		Where("id = ? AND created_by = ?", c.Param("id"), c.GetUint("user_id")).
		Updates(updates)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found or unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event updated successfully"})
}

// DeleteEvent removes an event the organiser owns together with its
// registrations, feedback and notifications, in one transaction.
func DeleteEvent(c *gin.Context) {
	eventID := c.Param("id")
	organiserID := c.GetUint("user_id")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", eventID).Delete(&models.Registration{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", eventID).Delete(&models.Feedback{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", eventID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND created_by = ?", eventID, organiserID).Delete(&models.Event{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found or unauthorized"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

// ManageEvents lists the organiser's own events with the derived
// registration count per event.
func ManageEvents(c *gin.Context) {
	var events []eventListing
	err := database.DB.
		Table("events AS e").
		Select(eventListingColumns).
		Joins("LEFT JOIN users u ON e.created_by = u.id").
		Where("e.created_by = ?", c.GetUint("user_id")).
		Order("e.date ASC").
		Scan(&events).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if events == nil {
		events = []eventListing{}
	}
	c.JSON(http.StatusOK, events)
}

type participantRow struct {
	ID               uint      `json:"id"`
	EventID          uint      `json:"event_id"`
	UserID           uint      `json:"user_id"`
	CheckedIn        bool      `json:"checked_in"`
	RegistrationDate time.Time `json:"registration_date"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	USN              string    `json:"usn"`
	Department       string    `json:"department"`
	Semester         string    `json:"semester"`
}

// GetParticipants lists everyone registered for one of the organiser's events.
func GetParticipants(c *gin.Context) {
	var event models.Event
	err := database.DB.
		Where("id = ? AND created_by = ?", c.Param("id"), c.GetUint("user_id")).
		First(&event).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found or unauthorized"})
		return
	}

	var participants []participantRow
	err = database.DB.
		Table("registrations AS r").
		Select(`r.id, r.event_id, r.user_id, r.checked_in, r.registration_date,
			u.name, u.email, u.usn, u.department, u.semester`).
		Joins("JOIN users u ON r.user_id = u.id").
		Where("r.event_id = ?", event.ID).
		Order("r.registration_date DESC").
		Scan(&participants).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if participants == nil {
		participants = []participantRow{}
	}

	c.JSON(http.StatusOK, gin.H{
		"event":        gin.H{"title": event.Title, "date": event.Date},
		"participants": participants,
	})
}

// saveEventImage stores an uploaded image, if any, under the upload dir and
// returns its public path. Returns "" when the request carries no image.
func saveEventImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil // no file attached
	}
	name := fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), rand.Intn(1e9), filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(cfg.UploadDir, name)); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}
