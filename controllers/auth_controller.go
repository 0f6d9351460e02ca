package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/open-nie/events-backend/database"
	"github.com/open-nie/events-backend/models"
	"github.com/open-nie/events-backend/utils"
)

// Register creates an account. Required fields depend on the role: organisers
// need a department, students need a USN and semester. Only college email
// addresses are accepted.
func Register(c *gin.Context) {
	var input struct {
		Role            string `json:"role"`
		Name            string `json:"name"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
		Department      string `json:"department"`
		USN             string `json:"usn"`
		Semester        string `json:"semester"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Role != string(models.RoleStudent) && input.Role != string(models.RoleOrganiser) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be student or organiser"})
		return
	}
	if input.Email == "" || input.Password == "" || input.ConfirmPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email, password, and confirm password are required"})
		return
	}
	if input.Password != input.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
		return
	}
	if !strings.HasSuffix(strings.ToLower(input.Email), strings.ToLower(cfg.EmailDomain)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only " + cfg.EmailDomain + " email addresses are allowed"})
		return
	}
	if input.Role == string(models.RoleOrganiser) && (input.Name == "" || input.Department == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and department are required for organisers"})
		return
	}
	if input.Role == string(models.RoleStudent) && (input.Name == "" || input.USN == "" || input.Semester == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, USN, and semester are required for students"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Name:       input.Name,
		Email:      input.Email,
		Password:   string(hashed),
		USN:        input.USN,
		Department: input.Department,
		Semester:   input.Semester,
		Role:       models.UserRole(input.Role),
	}
	if err := database.DB.Create(&user).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") ||
			strings.Contains(strings.ToLower(err.Error()), "duplicate key") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user":    user,
	})
}

// Login handles password-based login
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User not found"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid password"})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// VerifyToken restores a client session from a still-valid JWT.
func VerifyToken(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"user": gin.H{
			"id":    c.GetUint("user_id"),
			"email": c.GetString("email"),
			"role":  c.GetString("role"),
		},
	})
}
