// server/internal/models/restock_request.go
package models

import (
	"time"
)

// RestockRequest is a PHC-to-LGA supply request. At most one "pending"
// request may exist per (item, PHC); the partial unique index closes the
// check-then-insert race between concurrent sweeps.
type RestockRequest struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	RequestID      string    `gorm:"column:request_id;uniqueIndex;size:64" json:"request_id"`
	ItemName       string    `gorm:"size:255;not null;uniqueIndex:uidx_restock_pending,where:status = 'pending'" json:"item_name"`
	PHCID          uint      `gorm:"column:phc_id;not null;uniqueIndex:uidx_restock_pending,where:status = 'pending'" json:"phc_id"`
	PHC            *PHCUser  `gorm:"foreignKey:PHCID;constraint:OnDelete:CASCADE" json:"-"`
	PHCName        string    `gorm:"column:phc_name;size:255" json:"phc_name"`
	QuantityNeeded int       `gorm:"not null" json:"quantity_needed"`
	Status         string    `gorm:"size:32;default:pending" json:"status"` // "pending", "approved", "declined"
	PriorityLevel  string    `gorm:"size:16" json:"priority_level"`         // "High", "Medium", "Low"
	DaysRemaining  float64   `json:"days_remaining"`                        // snapshot at creation time
	Comments       string    `gorm:"type:text" json:"comments"`
	RequestDate    time.Time `gorm:"autoCreateTime" json:"request_date"`
}
