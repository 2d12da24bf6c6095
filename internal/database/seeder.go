// server/internal/database/seeder.go
package database

import (
	"errors"
	"log"

	"phc-ops-api-server/internal/auth"
	"phc-ops-api-server/internal/models"

	"gorm.io/gorm"
)

// SeedLGAAdmin makes sure the LGA administrator account exists so restock
// requests can be reviewed on a fresh database.
func SeedLGAAdmin(db *gorm.DB) error {
	adminName := "LGA Admin"

	var existing models.PHCUser
	err := db.Where("phc_name = ?", adminName).First(&existing).Error
	if err == nil {
		log.Println("LGA admin already exists. Seeding skipped.")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	log.Println("LGA admin not found. Seeding...")
	hashedPassword, err := auth.HashPassword("lgaadminpassword") // default password, change after first login
	if err != nil {
		return err
	}

	admin := models.PHCUser{
		PHCName:  adminName,
		Password: hashedPassword,
		Role:     "lga_admin",
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("LGA admin seeded successfully.")
	return nil
}
