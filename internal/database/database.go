// server/internal/database/database.go
package database

import (
	"log"

	"phc-ops-api-server/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Connect opens the Postgres store via GORM.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the tables. A failure is logged but does not
// prevent startup; per-request queries will surface storage errors.
func Migrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.PHCUser{},
		&models.Patient{},
		&models.InventoryItem{},
		&models.RestockRequest{},
		&models.WorkloadLog{},
		&models.Feedback{},
	)
	if err != nil {
		log.Printf("Warning: could not run migrations at startup: %v", err)
	}
}
