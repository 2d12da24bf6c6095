// server/internal/models/inventory_item.go
package models

import (
	"time"
)

// InventoryItem tracks one consumable at one PHC. DaysRemaining is a
// recomputed snapshot and stays null while the consumption rate is zero.
type InventoryItem struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	PHCID                uint      `gorm:"column:phc_id;not null;index" json:"phc_id"`
	PHC                  *PHCUser  `gorm:"foreignKey:PHCID;constraint:OnDelete:CASCADE" json:"-"`
	ItemName             string    `gorm:"size:255;not null" json:"item_name"`
	ItemType             string    `gorm:"size:64" json:"item_type"` // e.g. "drug", "vaccine", "consumable"
	Unit                 string    `gorm:"size:32" json:"unit"`
	CurrentStock         int       `gorm:"not null" json:"current_stock"`
	DailyConsumptionRate float64   `json:"daily_consumption_rate"`
	DaysRemaining        *float64  `json:"days_remaining"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
