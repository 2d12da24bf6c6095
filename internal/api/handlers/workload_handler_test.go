package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"phc-ops-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func workloadRouter(db *gorm.DB) *gin.Engine {
	h := &WorkloadHandler{DB: db}
	r := gin.New()
	r.POST("/workload/log", h.RecordWorkload)
	r.GET("/workload/logs/:phc_id", h.GetLogsByPHC)
	r.POST("/workload/forecast/:phc_id", h.ForecastNextDay)
	return r
}

func seedVisits(t *testing.T, db *gorm.DB, phcID uint, visits []int) {
	t.Helper()
	now := time.Now()
	for i, v := range visits {
		require.NoError(t, db.Create(&models.WorkloadLog{
			PHCID:                phcID,
			Date:                 now.Add(-time.Duration(i) * time.Hour),
			QueueCount:           v,
			CompletedVisitsToday: v,
		}).Error)
	}
}

func TestRecordWorkload(t *testing.T) {
	db := setupTestDB(t)
	phc := createTestPHC(t, db, "Central PHC", 10, nil, nil)
	router := workloadRouter(db)

	payload := gin.H{"phc_id": phc.ID, "queue_count": 8, "avg_wait_time": 25.5, "completed_visits_today": 40}
	w := performRequest(t, router, http.MethodPost, "/workload/log", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	var logEntry models.WorkloadLog
	decodeBody(t, w, &logEntry)
	assert.Equal(t, 40, logEntry.CompletedVisitsToday)
	assert.False(t, logEntry.Date.IsZero())

	payload["phc_id"] = 99999
	w = performRequest(t, router, http.MethodPost, "/workload/log", payload)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestForecastInsufficientHistory(t *testing.T) {
	db := setupTestDB(t)
	phc := createTestPHC(t, db, "Central PHC", 10, nil, nil)
	router := workloadRouter(db)

	seedVisits(t, db, phc.ID, []int{12, 12})

	w := performRequest(t, router, http.MethodPost, fmt.Sprintf("/workload/forecast/%d", phc.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Not enough data")
}

func TestForecastOverloadCounterSequence(t *testing.T) {
	db := setupTestDB(t)
	phc := createTestPHC(t, db, "Central PHC", 10, nil, nil)
	router := workloadRouter(db)

	forecastOnce := func() ForecastResponse {
		w := performRequest(t, router, http.MethodPost, fmt.Sprintf("/workload/forecast/%d", phc.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp ForecastResponse
		decodeBody(t, w, &resp)
		return resp
	}

	// Constant series of 12 forecasts 12 against capacity 10: overload.
	seedVisits(t, db, phc.ID, []int{12, 12, 12})

	resp := forecastOnce()
	assert.InDelta(t, 12.0, resp.ForecastNextDay, 1e-9)
	assert.Equal(t, 1, resp.OverloadDays)
	assert.Contains(t, resp.Message, "exceeds capacity")

	resp = forecastOnce()
	assert.Equal(t, 2, resp.OverloadDays)

	// Load drops below capacity: counter resets to zero.
	require.NoError(t, db.Where("phc_id = ?", phc.ID).Delete(&models.WorkloadLog{}).Error)
	seedVisits(t, db, phc.ID, []int{5, 5, 5})

	resp = forecastOnce()
	assert.InDelta(t, 5.0, resp.ForecastNextDay, 1e-9)
	assert.Equal(t, 0, resp.OverloadDays)
	assert.Contains(t, resp.Message, "Normal load")
	assert.Empty(t, resp.RerouteSuggestions)
}

func TestForecastRerouteSuggestions(t *testing.T) {
	db := setupTestDB(t)
	phc := createTestPHC(t, db, "Central PHC", 10, floatPtr(6.5), floatPtr(3.4))
	createTestPHC(t, db, "Near PHC", 30, floatPtr(6.55), floatPtr(3.45))
	createTestPHC(t, db, "Far PHC", 30, floatPtr(9.0), floatPtr(7.0))
	router := workloadRouter(db)

	seedVisits(t, db, phc.ID, []int{20, 20, 20})

	w := performRequest(t, router, http.MethodPost, fmt.Sprintf("/workload/forecast/%d", phc.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ForecastResponse
	decodeBody(t, w, &resp)
	require.Len(t, resp.RerouteSuggestions, 1)
	assert.Equal(t, "Near PHC", resp.RerouteSuggestions[0].PHCName)
	assert.Contains(t, resp.Message, "Suggested nearby PHCs: Near PHC")
}

func TestForecastNoRerouteWithoutCoordinates(t *testing.T) {
	db := setupTestDB(t)
	phc := createTestPHC(t, db, "Central PHC", 10, nil, nil)
	createTestPHC(t, db, "Near PHC", 30, floatPtr(0.01), floatPtr(0.01))
	router := workloadRouter(db)

	seedVisits(t, db, phc.ID, []int{20, 20, 20})

	w := performRequest(t, router, http.MethodPost, fmt.Sprintf("/workload/forecast/%d", phc.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ForecastResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, 1, resp.OverloadDays)
	assert.Empty(t, resp.RerouteSuggestions)
	assert.NotContains(t, resp.Message, "Suggested nearby PHCs")
}

func TestForecastUnknownPHC(t *testing.T) {
	db := setupTestDB(t)
	phc := createTestPHC(t, db, "Central PHC", 10, nil, nil)
	router := workloadRouter(db)

	// Logs exist but the PHC id in the path does not.
	seedVisits(t, db, phc.ID, []int{12, 12, 12})

	w := performRequest(t, router, http.MethodPost, "/workload/forecast/99999", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code) // no logs means insufficient data first
}

func TestGetLogsByPHC(t *testing.T) {
	db := setupTestDB(t)
	phc := createTestPHC(t, db, "Central PHC", 10, nil, nil)
	other := createTestPHC(t, db, "Other PHC", 10, nil, nil)
	router := workloadRouter(db)

	seedVisits(t, db, phc.ID, []int{12, 10, 8})
	seedVisits(t, db, other.ID, []int{3})

	w := performRequest(t, router, http.MethodGet, fmt.Sprintf("/workload/logs/%d", phc.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var logs []models.WorkloadLog
	decodeBody(t, w, &logs)
	require.Len(t, logs, 3)
	// Most recent first.
	assert.Equal(t, 12, logs[0].CompletedVisitsToday)
}
