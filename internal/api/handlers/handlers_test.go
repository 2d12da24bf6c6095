package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"phc-ops-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestDB opens a fresh in-memory store with the full schema, including
// the partial unique index on pending restock requests.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.PHCUser{},
		&models.Patient{},
		&models.InventoryItem{},
		&models.RestockRequest{},
		&models.WorkloadLog{},
		&models.Feedback{},
	))

	return db
}

func createTestPHC(t *testing.T, db *gorm.DB, name string, capacity int, lat, lon *float64) models.PHCUser {
	t.Helper()

	phc := models.PHCUser{
		PHCName:   name,
		Password:  "not-a-real-hash",
		Role:      "phc",
		Capacity:  capacity,
		Latitude:  lat,
		Longitude: lon,
	}
	require.NoError(t, db.Create(&phc).Error)
	return phc
}

func performRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target))
}

func floatPtr(v float64) *float64 { return &v }
