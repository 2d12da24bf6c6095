// server/internal/inventory/estimator.go
package inventory

import (
	"math"
)

const (
	// DefaultThresholdDays is the days-remaining cutoff for low-stock listings
	// and the Medium priority tier.
	DefaultThresholdDays = 5.0

	// HighPriorityDays is the cutoff for the High priority tier.
	HighPriorityDays = 2.0

	// RestockSupplyDays is how many days of consumption a suggested restock
	// quantity should cover.
	RestockSupplyDays = 7
)

// DaysRemaining projects how many days the current stock lasts at the given
// daily consumption rate, rounded to one decimal place. Returns nil when the
// rate is zero or negative: depletion is undefined and the item is excluded
// from low-stock listings.
func DaysRemaining(currentStock int, dailyConsumptionRate float64) *float64 {
	if dailyConsumptionRate <= 0 {
		return nil
	}
	days := math.Round(float64(currentStock)/dailyConsumptionRate*10) / 10
	return &days
}

// PriorityFor buckets a days-remaining value into a three-tier priority.
// Boundaries are inclusive on the lower bound: exactly 2 days is High,
// exactly mediumThreshold days is Medium.
func PriorityFor(daysRemaining, mediumThreshold float64) string {
	switch {
	case daysRemaining <= HighPriorityDays:
		return "High"
	case daysRemaining <= mediumThreshold:
		return "Medium"
	default:
		return "Low"
	}
}

// SuggestedQuantity is one week of projected consumption, floored at zero
// for zero or negative rates.
func SuggestedQuantity(dailyConsumptionRate float64) int {
	qty := int(math.Round(dailyConsumptionRate * RestockSupplyDays))
	if qty < 0 {
		qty = 0
	}
	return qty
}
