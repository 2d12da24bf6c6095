// server/internal/scheduler/scheduler.go
package scheduler

import (
	"log"
	"time"

	"phc-ops-api-server/internal/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// jobName identifies the daily purge in logs. Registration happens once per
// process start, which replaces whatever schedule a previous process held.
const jobName = "daily_reset_job"

// Scheduler runs the daily workload-log reset outside the request cycle.
type Scheduler struct {
	cron *cron.Cron
	db   *gorm.DB
}

// New builds the scheduler in the configured timezone. An unknown timezone
// falls back to UTC rather than failing startup.
func New(db *gorm.DB, timezone string) *Scheduler {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		log.Printf("Unknown scheduler timezone %q, falling back to UTC: %v", timezone, err)
		loc = time.UTC
	}

	return &Scheduler{
		cron: cron.New(cron.WithLocation(loc)),
		db:   db,
	}
}

// Start registers the midnight purge and launches the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("0 0 * * *", func() {
		if err := ResetDailyWorkload(s.db); err != nil {
			// No retry; the next scheduled firing picks it up.
			log.Printf("%s failed: %v", jobName, err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("Scheduler started, %s registered for daily workload resets.", jobName)
	return nil
}

// Stop halts the cron loop. Running jobs finish on their own.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// ResetDailyWorkload deletes workload logs dated strictly before today.
// Deleting already-deleted rows is a no-op, so overlapping runs are safe.
func ResetDailyWorkload(db *gorm.DB) error {
	now := time.Now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	result := db.Where("date < ?", startOfToday).Delete(&models.WorkloadLog{})
	if result.Error != nil {
		return result.Error
	}

	log.Printf("Daily workload log reset completed, %d rows purged.", result.RowsAffected)
	return nil
}
