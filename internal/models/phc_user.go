// server/internal/models/phc_user.go
package models

import (
	"time"
)

// PHCUser is a Primary Healthcare Center account. The facility and its
// login identity are the same row, mirroring how the centers register.
type PHCUser struct {
	ID                      uint      `gorm:"primaryKey" json:"id"`
	PHCName                 string    `gorm:"column:phc_name;uniqueIndex;size:255;not null" json:"phc_name"`
	Password                string    `gorm:"not null" json:"-"`
	Role                    string    `gorm:"size:32;default:phc" json:"role"` // "phc" or "lga_admin"
	Capacity                int       `json:"capacity"`                        // max sustainable daily visits
	ConsecutiveOverloadDays int       `gorm:"default:0" json:"consecutive_overload_days"`
	Latitude                *float64  `json:"latitude"`
	Longitude               *float64  `json:"longitude"`
	LGAAdminEmail           string    `gorm:"column:lga_admin_email;size:255" json:"lga_admin_email"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}
