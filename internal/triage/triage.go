// server/internal/triage/triage.go
package triage

import (
	"context"

	"phc-ops-api-server/internal/models"
)

// Urgency levels a classifier may assign, most to least urgent.
const (
	UrgencyCritical = "Critical"
	UrgencySevere   = "Severe"
	UrgencyModerate = "Moderate"
	UrgencyMild     = "Mild"
)

// Assessment is the structured triage result returned to the frontline client.
type Assessment struct {
	PatientID          uint     `json:"patient_id"`
	UrgencyLevel       string   `json:"urgency_level"`
	RecommendedActions []string `json:"recommended_actions"`
	Reasoning          string   `json:"reasoning"`
	Source             string   `json:"source"` // "ai" or "rules"
}

// Classifier produces a triage assessment for a patient. Implementations are
// constructed explicitly and injected into handlers, never held as package
// singletons, so tests can substitute a fake.
type Classifier interface {
	Classify(ctx context.Context, patient models.Patient) (*Assessment, error)
}

func validUrgency(level string) bool {
	switch level {
	case UrgencyCritical, UrgencySevere, UrgencyModerate, UrgencyMild:
		return true
	}
	return false
}
