// server/internal/workload/reroute.go
package workload

import (
	"math"

	"phc-ops-api-server/internal/models"
)

const (
	// RerouteRadiusDegrees bounds the planar degree-space distance for a
	// sibling PHC to count as an overflow target (roughly ~15 km).
	RerouteRadiusDegrees = 0.15

	// KmPerDegree converts a degree-space distance for display.
	KmPerDegree = 111.0
)

// Suggestion is one nearby PHC proposed as an overflow target.
type Suggestion struct {
	PHCName    string  `json:"phc_name"`
	DistanceKm float64 `json:"distance_km"`
}

// NearbySuggestions scans candidate PHCs and keeps those within
// RerouteRadiusDegrees of the origin. Distance is planar Euclidean in
// coordinate-degree space, an approximation that holds at small distances
// and breaks near the poles or the antimeridian. Order follows the scan;
// candidate capacity is not checked.
func NearbySuggestions(origin models.PHCUser, candidates []models.PHCUser) []Suggestion {
	if origin.Latitude == nil || origin.Longitude == nil {
		return nil
	}

	suggestions := []Suggestion{}
	for _, n := range candidates {
		if n.ID == origin.ID || n.Latitude == nil || n.Longitude == nil {
			continue
		}
		dLat := *origin.Latitude - *n.Latitude
		dLon := *origin.Longitude - *n.Longitude
		distance := math.Sqrt(dLat*dLat + dLon*dLon)
		if distance < RerouteRadiusDegrees {
			suggestions = append(suggestions, Suggestion{
				PHCName:    n.PHCName,
				DistanceKm: math.Round(distance*KmPerDegree*10) / 10,
			})
		}
	}

	return suggestions
}
