package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ScanQR marks attendance from a scanned token at an organiser's station.
// The optional event_id pins the scan to one event so a valid token scanned
// at the wrong station is rejected rather than checked in.
func ScanQR(c *gin.Context) {
	var input struct {
		QRCode  string `json:"qr_code"`
		EventID uint   `json:"event_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.QRCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing QR code data"})
		return
	}

	participant, err := checkinSvc.Scan(c.Request.Context(), c.GetUint("user_id"), input.QRCode, input.EventID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Attendance marked successfully",
		"participant": participant,
	})
}
