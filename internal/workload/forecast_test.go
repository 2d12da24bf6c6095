package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecastInsufficientData(t *testing.T) {
	_, err := Forecast(nil)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = Forecast([]int{10})
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = Forecast([]int{10, 12})
	assert.ErrorIs(t, err, ErrInsufficientData)

	// Exactly three points must not fail.
	_, err = Forecast([]int{10, 12, 14})
	assert.NoError(t, err)
}

func TestForecastLinearTrend(t *testing.T) {
	// Logs arrive most recent first: visits of 8, 10, 12 (oldest to newest)
	// become [12, 10, 8]. The fitted line is y = 12 - 2x, evaluated at
	// x = len+1 = 4, giving 4.
	forecast, err := Forecast([]int{12, 10, 8})
	require.NoError(t, err)
	assert.InDelta(t, 4.0, forecast, 1e-9)
}

func TestForecastConstantSeries(t *testing.T) {
	forecast, err := Forecast([]int{7, 7, 7, 7, 7})
	require.NoError(t, err)
	assert.InDelta(t, 7.0, forecast, 1e-9)
}

func TestForecastRisingSeries(t *testing.T) {
	// Reverse-chronological falling series means a rising trend going
	// forward in the retrieval ordering; y = 5 + x at x = 5 is 10.
	forecast, err := Forecast([]int{5, 6, 7, 8})
	require.NoError(t, err)
	assert.InDelta(t, 10.0, forecast, 1e-9)
}
