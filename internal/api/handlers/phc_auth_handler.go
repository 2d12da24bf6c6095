// server/internal/api/handlers/phc_auth_handler.go
package handlers

import (
	"errors"
	"net/http"
	"time"

	"phc-ops-api-server/config"
	"phc-ops-api-server/internal/auth"
	"phc-ops-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PHCAuthHandler struct {
	DB  *gorm.DB
	Cfg config.Config
}

type SignUpRequest struct {
	PHCName       string   `json:"phc_name" binding:"required,max=255"`
	Password      string   `json:"password" binding:"required,min=3,max=72"`
	Capacity      int      `json:"capacity" binding:"required,gt=0"`
	Latitude      *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude     *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
	LGAAdminEmail string   `json:"lga_admin_email" binding:"omitempty,email"`
}

type SignInRequest struct {
	PHCName  string `json:"phc_name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignUp registers a new PHC account.
func (h *PHCAuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.PHCUser
	err := h.DB.Where("phc_name = ?", req.PHCName).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "PHC already registered"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking for PHC", "details": err.Error()})
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	newPHC := models.PHCUser{
		PHCName:       req.PHCName,
		Password:      hashedPassword,
		Role:          "phc",
		Capacity:      req.Capacity,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		LGAAdminEmail: req.LGAAdminEmail,
	}

	if err := h.DB.Create(&newPHC).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create PHC account", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "PHC account created successfully",
		"id":       newPHC.ID,
		"phc_name": newPHC.PHCName,
	})
}

// SignIn checks the credentials and issues a JWT.
func (h *PHCAuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var phc models.PHCUser
	err := h.DB.Where("phc_name = ?", req.PHCName).First(&phc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "PHC not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve PHC", "details": err.Error()})
		}
		return
	}

	if !auth.CheckPasswordHash(req.Password, phc.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect password"})
		return
	}

	expiration, err := time.ParseDuration(h.Cfg.JWT.Expiration)
	if err != nil {
		expiration = 12 * time.Hour
	}

	token, err := auth.GenerateJWT(phc.ID, phc.PHCName, phc.Role, expiration)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"access_token": token,
		"token_type":   "bearer",
		"phc_id":       phc.ID,
		"phc_name":     phc.PHCName,
		"role":         phc.Role,
	})
}
