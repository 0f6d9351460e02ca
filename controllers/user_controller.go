package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/open-nie/events-backend/database"
	"github.com/open-nie/events-backend/models"
)

// GetProfile returns the authenticated user's account.
func GetProfile(c *gin.Context) {
	var user models.User
	if err := database.DB.First(&user, c.GetUint("user_id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the authenticated user's own information. Role and
// email are immutable here.
func UpdateProfile(c *gin.Context) {
	var user models.User
	if err := database.DB.First(&user, c.GetUint("user_id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var input struct {
		Name       *string `json:"name"`
		USN        *string `json:"usn"`
		Department *string `json:"department"`
		Semester   *string `json:"semester"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.USN != nil {
		user.USN = *input.USN
	}
	if input.Department != nil {
		user.Department = *input.Department
	}
	if input.Semester != nil {
		user.Semester = *input.Semester
	}

	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	c.JSON(http.StatusOK, user)
}
