// server/internal/models/feedback.go
package models

import (
	"time"
)

type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PHCID     uint      `gorm:"column:phc_id;not null;index" json:"phc_id"`
	PHC       *PHCUser  `gorm:"foreignKey:PHCID;constraint:OnDelete:CASCADE" json:"-"`
	Category  string    `gorm:"size:64" json:"category"` // e.g. "equipment", "staffing", "supply"
	Message   string    `gorm:"type:text;not null" json:"message"`
	Status    string    `gorm:"size:32;default:open" json:"status"` // "open", "resolved"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
