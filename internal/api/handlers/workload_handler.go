// server/internal/api/handlers/workload_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"phc-ops-api-server/internal/models"
	"phc-ops-api-server/internal/socket"
	"phc-ops-api-server/internal/workload"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type WorkloadHandler struct {
	DB  *gorm.DB
	Hub *socket.Hub
}

type WorkloadLogPayload struct {
	PHCID                uint       `json:"phc_id" binding:"required"`
	Date                 *time.Time `json:"date"`
	QueueCount           int        `json:"queue_count" binding:"min=0"`
	AvgWaitTime          float64    `json:"avg_wait_time" binding:"min=0"`
	CompletedVisitsToday int        `json:"completed_visits_today" binding:"min=0"`
}

type ForecastResponse struct {
	ForecastNextDay    float64               `json:"forecast_next_day"`
	Capacity           int                   `json:"capacity"`
	OverloadDays       int                   `json:"overload_days"`
	Message            string                `json:"message"`
	RerouteSuggestions []workload.Suggestion `json:"reroute_suggestions"`
}

// RecordWorkload ingests one intra-day workload snapshot for a PHC.
func (h *WorkloadHandler) RecordWorkload(c *gin.Context) {
	var payload WorkloadLogPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var phc models.PHCUser
	if err := h.DB.First(&phc, "id = ?", payload.PHCID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "PHC not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve PHC", "details": err.Error()})
		}
		return
	}

	date := time.Now()
	if payload.Date != nil {
		date = *payload.Date
	}

	logEntry := models.WorkloadLog{
		PHCID:                payload.PHCID,
		Date:                 date,
		QueueCount:           payload.QueueCount,
		AvgWaitTime:          payload.AvgWaitTime,
		CompletedVisitsToday: payload.CompletedVisitsToday,
	}

	if err := h.DB.Create(&logEntry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record workload log", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, logEntry)
}

// GetLogsByPHC lists a PHC's workload logs, most recent first.
func (h *WorkloadHandler) GetLogsByPHC(c *gin.Context) {
	var logs []models.WorkloadLog
	if err := h.DB.Where("phc_id = ?", c.Param("phc_id")).Order("date desc").Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query workload logs", "details": err.Error()})
		return
	}

	if logs == nil {
		logs = []models.WorkloadLog{}
	}

	c.JSON(http.StatusOK, logs)
}

// ForecastNextDay projects tomorrow's visit volume from the most recent 14
// logs, flags overload against the PHC's capacity and suggests nearby PHCs
// as overflow targets when applicable.
func (h *WorkloadHandler) ForecastNextDay(c *gin.Context) {
	phcID := c.Param("phc_id")

	var logs []models.WorkloadLog
	if err := h.DB.Where("phc_id = ?", phcID).
		Order("date desc").Limit(workload.ForecastWindow).Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query workload logs", "details": err.Error()})
		return
	}

	visits := lo.Map(logs, func(l models.WorkloadLog, _ int) int {
		return l.CompletedVisitsToday
	})

	forecast, err := workload.Forecast(visits)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Not enough data to forecast"})
		return
	}

	var phc models.PHCUser
	if err := h.DB.First(&phc, "id = ?", phcID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "PHC not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve PHC", "details": err.Error()})
		}
		return
	}

	overloaded := forecast > float64(phc.Capacity)
	message := "Normal load expected tomorrow."

	// Atomic counter update; read-modify-write from here would race with
	// concurrent forecast calls for the same PHC.
	counterQuery := h.DB.Model(&models.PHCUser{}).Where("id = ?", phc.ID)
	if overloaded {
		message = fmt.Sprintf(
			"Forecast (%.1f) exceeds capacity (%d). Suggest rerouting some patients to nearby PHCs.",
			forecast, phc.Capacity)
		err = counterQuery.UpdateColumn("consecutive_overload_days",
			gorm.Expr("consecutive_overload_days + ?", 1)).Error
	} else {
		err = counterQuery.UpdateColumn("consecutive_overload_days", 0).Error
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update overload counter", "details": err.Error()})
		return
	}

	if err := h.DB.First(&phc, "id = ?", phc.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload PHC", "details": err.Error()})
		return
	}

	suggestions := []workload.Suggestion{}
	if overloaded && phc.Latitude != nil && phc.Longitude != nil {
		var candidates []models.PHCUser
		if err := h.DB.Where("id <> ? AND latitude IS NOT NULL", phc.ID).Find(&candidates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query nearby PHCs", "details": err.Error()})
			return
		}
		suggestions = workload.NearbySuggestions(phc, candidates)
	}

	if len(suggestions) > 0 {
		names := lo.Map(suggestions, func(s workload.Suggestion, _ int) string {
			return s.PHCName
		})
		message += fmt.Sprintf(" Suggested nearby PHCs: %s", strings.Join(names, ", "))
	}

	if overloaded && h.Hub != nil {
		payload, _ := json.Marshal(gin.H{
			"type":     "overload_alert",
			"phc_id":   phc.ID,
			"phc_name": phc.PHCName,
			"forecast": forecast,
			"capacity": phc.Capacity,
		})
		h.Hub.Broadcast(payload)
	}

	c.JSON(http.StatusOK, ForecastResponse{
		ForecastNextDay:    forecast,
		Capacity:           phc.Capacity,
		OverloadDays:       phc.ConsecutiveOverloadDays,
		Message:            message,
		RerouteSuggestions: suggestions,
	})
}
