// server/internal/workload/forecast.go
package workload

import (
	"errors"
)

const (
	// ForecastWindow is how many recent logs feed the trend fit.
	ForecastWindow = 14

	// MinLogs is the minimum history needed to fit a line.
	MinLogs = 3
)

// ErrInsufficientData is returned when fewer than MinLogs data points exist.
var ErrInsufficientData = errors.New("not enough data to forecast")

// Forecast fits an ordinary least-squares line to (index, visits) pairs and
// evaluates it at index len(visits)+1. The caller supplies visits in the
// order the logs were retrieved (most recent first); the fit is a naive
// trend extrapolation, sensitive to that ordering and to the window size.
func Forecast(visits []int) (float64, error) {
	n := len(visits)
	if n < MinLogs {
		return 0, ErrInsufficientData
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, v := range visits {
		x := float64(i)
		y := float64(v)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		// All indices identical cannot happen for n >= 2; guard anyway.
		return sumY / fn, nil
	}

	slope := (fn*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / fn

	return intercept + slope*float64(n+1), nil
}
