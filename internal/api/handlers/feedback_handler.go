// server/internal/api/handlers/feedback_handler.go
package handlers

import (
	"errors"
	"net/http"

	"phc-ops-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FeedbackHandler struct {
	DB *gorm.DB
}

type CreateFeedbackRequest struct {
	PHCID    uint   `json:"phc_id" binding:"required"`
	Category string `json:"category"`
	Message  string `json:"message" binding:"required"`
}

type UpdateFeedbackRequest struct {
	Status string `json:"status" binding:"required,oneof=open resolved"`
}

// SubmitFeedback records an issue report from a PHC.
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	var req CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var phc models.PHCUser
	if err := h.DB.First(&phc, "id = ?", req.PHCID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "PHC not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve PHC", "details": err.Error()})
		}
		return
	}

	feedback := models.Feedback{
		PHCID:    req.PHCID,
		Category: req.Category,
		Message:  req.Message,
		Status:   "open",
	}

	if err := h.DB.Create(&feedback).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit feedback", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, feedback)
}

// GetFeedbackByPHC lists all feedback recorded for one PHC.
func (h *FeedbackHandler) GetFeedbackByPHC(c *gin.Context) {
	var feedbacks []models.Feedback
	if err := h.DB.Where("phc_id = ?", c.Param("phc_id")).Order("created_at desc").Find(&feedbacks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query feedback", "details": err.Error()})
		return
	}

	if len(feedbacks) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No feedback found for this PHC"})
		return
	}

	c.JSON(http.StatusOK, feedbacks)
}

// UpdateFeedbackStatus marks a feedback entry open or resolved.
func (h *FeedbackHandler) UpdateFeedbackStatus(c *gin.Context) {
	var req UpdateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var feedback models.Feedback
	if err := h.DB.First(&feedback, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve feedback", "details": err.Error()})
		}
		return
	}

	feedback.Status = req.Status
	if err := h.DB.Save(&feedback).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update feedback", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, feedback)
}
