// server/internal/models/workload_log.go
package models

import (
	"time"
)

// WorkloadLog is an intra-day snapshot of a PHC's load. Rows older than the
// current date are purged by the daily reset job.
type WorkloadLog struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	PHCID                uint      `gorm:"column:phc_id;not null;index" json:"phc_id"`
	PHC                  *PHCUser  `gorm:"foreignKey:PHCID;constraint:OnDelete:CASCADE" json:"-"`
	Date                 time.Time `gorm:"index;not null" json:"date"`
	QueueCount           int       `json:"queue_count"`
	AvgWaitTime          float64   `gorm:"column:avg_wait_time" json:"avg_wait_time"` // minutes
	CompletedVisitsToday int       `json:"completed_visits_today"`
	ForecastNextDay      *float64  `json:"forecast_next_day"`
	AlertSent            bool      `gorm:"default:false" json:"alert_sent"`
}
