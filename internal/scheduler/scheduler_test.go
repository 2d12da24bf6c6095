package scheduler

import (
	"testing"
	"time"

	"phc-ops-api-server/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.PHCUser{}, &models.WorkloadLog{}))
	return db
}

func TestResetDailyWorkload(t *testing.T) {
	db := setupTestDB(t)

	phc := models.PHCUser{PHCName: "Central PHC", Password: "x", Role: "phc", Capacity: 10}
	require.NoError(t, db.Create(&phc).Error)

	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	lastWeek := now.AddDate(0, 0, -7)

	for _, date := range []time.Time{now, yesterday, lastWeek} {
		require.NoError(t, db.Create(&models.WorkloadLog{
			PHCID:                phc.ID,
			Date:                 date,
			QueueCount:           5,
			CompletedVisitsToday: 5,
		}).Error)
	}

	require.NoError(t, ResetDailyWorkload(db))

	var remaining []models.WorkloadLog
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.WithinDuration(t, now, remaining[0].Date, time.Minute)

	// Running again with nothing left to purge is a no-op.
	require.NoError(t, ResetDailyWorkload(db))
	var count int64
	require.NoError(t, db.Model(&models.WorkloadLog{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestNewFallsBackToUTC(t *testing.T) {
	db := setupTestDB(t)

	s := New(db, "Not/AZone")
	require.NotNil(t, s)

	require.NoError(t, s.Start())
	s.Stop()
}
