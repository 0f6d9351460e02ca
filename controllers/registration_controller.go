package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// RegisterForEvent registers the authenticated student for an event.
func RegisterForEvent(c *gin.Context) {
	var input struct {
		EventID uint `json:"event_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.EventID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event_id is required"})
		return
	}

	result, err := regService.Register(c.Request.Context(), c.GetUint("user_id"), input.EventID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":         "Registration successful",
		"registration_id": result.RegistrationID,
		"qr_code":         result.QRCode,
		"usn":             result.USN,
		"semester":        result.Semester,
	})
}

// MyRegistrations lists the authenticated user's registrations with event
// details, ordered by event date and time.
func MyRegistrations(c *gin.Context) {
	registrations, err := regService.ListMine(c.Request.Context(), c.GetUint("user_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, registrations)
}

// CancelRegistration removes one of the authenticated user's registrations.
func CancelRegistration(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid registration ID"})
		return
	}
	if err := regService.Cancel(c.Request.Context(), c.GetUint("user_id"), uint(id)); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Registration cancelled successfully"})
}

// SelfCheckIn redeems a check-in token presented by its bearer, without any
// organiser involvement (kiosk flow).
func SelfCheckIn(c *gin.Context) {
	var input struct {
		QRCode string `json:"qr_code"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.QRCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "QR code required"})
		return
	}

	participant, err := checkinSvc.SelfCheckIn(c.Request.Context(), input.QRCode)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Check-in successful",
		"event_title": participant.EventTitle,
		"participant": participant,
	})
}
