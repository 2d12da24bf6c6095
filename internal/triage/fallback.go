// server/internal/triage/fallback.go
package triage

import (
	"context"
	"fmt"
	"strings"

	"phc-ops-api-server/internal/models"
)

// Symptom keyword lists, checked most urgent first. Matching is substring
// based on the lowercased symptom text.
var (
	criticalKeywords = []string{
		"unconscious", "not breathing", "severe bleeding", "chest pain",
		"convulsion", "seizure", "unresponsive",
	}
	severeKeywords = []string{
		"difficulty breathing", "shortness of breath", "high fever",
		"persistent vomiting", "dehydration", "severe pain",
	}
	moderateKeywords = []string{
		"fever", "vomiting", "diarrhea", "diarrhoea", "cough",
		"infection", "rash", "headache",
	}
)

var actionsByUrgency = map[string][]string{
	UrgencyCritical: {"Refer to hospital", "Administer first aid"},
	UrgencySevere:   {"Wait for GP", "Order tests"},
	UrgencyModerate: {"Wait for GP", "Order tests"},
	UrgencyMild:     {"Wait for GP"},
}

// RuleBasedClassifier is the deterministic fallback used when the LLM
// collaborator is unavailable or returns malformed output. It keys on
// symptom keywords and age and never fails.
type RuleBasedClassifier struct{}

func (RuleBasedClassifier) Classify(_ context.Context, patient models.Patient) (*Assessment, error) {
	baseLevel, matched := baseUrgency(patient.Symptoms)

	// Very young and elderly patients are bumped one tier.
	level := baseLevel
	if patient.Age < 5 || patient.Age > 65 {
		level = escalate(baseLevel)
	}

	reasoning := "No urgent symptom keywords matched; routine care is appropriate."
	if matched != "" {
		reasoning = fmt.Sprintf("Symptom %q matched the %s tier keyword rules.", matched, baseLevel)
	}
	if patient.Age < 5 || patient.Age > 65 {
		reasoning += " Age-based escalation applied."
	}

	return &Assessment{
		PatientID:          patient.ID,
		UrgencyLevel:       level,
		RecommendedActions: actionsByUrgency[level],
		Reasoning:          reasoning,
		Source:             "rules",
	}, nil
}

func baseUrgency(symptoms []string) (string, string) {
	for _, s := range symptoms {
		lower := strings.ToLower(s)
		for _, kw := range criticalKeywords {
			if strings.Contains(lower, kw) {
				return UrgencyCritical, s
			}
		}
	}
	for _, s := range symptoms {
		lower := strings.ToLower(s)
		for _, kw := range severeKeywords {
			if strings.Contains(lower, kw) {
				return UrgencySevere, s
			}
		}
	}
	for _, s := range symptoms {
		lower := strings.ToLower(s)
		for _, kw := range moderateKeywords {
			if strings.Contains(lower, kw) {
				return UrgencyModerate, s
			}
		}
	}
	return UrgencyMild, ""
}

func escalate(level string) string {
	switch level {
	case UrgencyMild:
		return UrgencyModerate
	case UrgencyModerate:
		return UrgencySevere
	case UrgencySevere:
		return UrgencyCritical
	}
	return level
}
