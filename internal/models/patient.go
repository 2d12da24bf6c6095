// server/internal/models/patient.go
package models

import (
	"time"

	"gorm.io/datatypes"
)

type Patient struct {
	ID             uint                        `gorm:"primaryKey" json:"id"`
	Name           string                      `gorm:"size:255;not null;index" json:"name"`
	Age            int                         `gorm:"not null" json:"age"`
	Sex            string                      `gorm:"size:16;not null" json:"sex"`        // "Male", "Female"
	Symptoms       datatypes.JSONSlice[string] `gorm:"not null" json:"symptoms"`           // e.g. ["fever", "cough"]
	VisitType      string                      `gorm:"size:32;not null" json:"visit_type"` // "Emergency", "Acute", "Routine", "Follow-up"
	Vitals         string                      `gorm:"type:text" json:"vitals"`            // JSON string, e.g. {"temperature": 38.5}
	MedicalHistory datatypes.JSONSlice[string] `json:"medical_history"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}
