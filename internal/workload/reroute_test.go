package workload

import (
	"testing"

	"phc-ops-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestNearbySuggestionsFiltersByRadius(t *testing.T) {
	origin := models.PHCUser{ID: 1, PHCName: "Central PHC", Latitude: ptr(6.5), Longitude: ptr(3.4)}
	candidates := []models.PHCUser{
		{ID: 2, PHCName: "Near PHC", Latitude: ptr(6.55), Longitude: ptr(3.45)},      // ~0.07 deg
		{ID: 3, PHCName: "Far PHC", Latitude: ptr(7.5), Longitude: ptr(3.4)},         // 1 deg
		{ID: 4, PHCName: "No Coords PHC", Latitude: nil, Longitude: nil},
		{ID: 1, PHCName: "Central PHC", Latitude: ptr(6.5), Longitude: ptr(3.4)},     // self
		{ID: 5, PHCName: "Boundary PHC", Latitude: ptr(6.65), Longitude: ptr(3.4)},   // exactly 0.15 deg
	}

	suggestions := NearbySuggestions(origin, candidates)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Near PHC", suggestions[0].PHCName)
	// sqrt(0.05^2 + 0.05^2) * 111 = 7.849..., rounded to one decimal
	assert.Equal(t, 7.8, suggestions[0].DistanceKm)
}

func TestNearbySuggestionsBoundaryIsExclusive(t *testing.T) {
	origin := models.PHCUser{ID: 1, PHCName: "A", Latitude: ptr(0), Longitude: ptr(0)}
	atBoundary := []models.PHCUser{{ID: 2, PHCName: "B", Latitude: ptr(0.15), Longitude: ptr(0)}}
	assert.Empty(t, NearbySuggestions(origin, atBoundary))

	justInside := []models.PHCUser{{ID: 2, PHCName: "B", Latitude: ptr(0.149), Longitude: ptr(0)}}
	assert.Len(t, NearbySuggestions(origin, justInside), 1)
}

func TestNearbySuggestionsOriginWithoutCoordinates(t *testing.T) {
	origin := models.PHCUser{ID: 1, PHCName: "A"}
	candidates := []models.PHCUser{{ID: 2, PHCName: "B", Latitude: ptr(0.01), Longitude: ptr(0.01)}}
	assert.Nil(t, NearbySuggestions(origin, candidates))
}
