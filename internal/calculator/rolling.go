package calculator

import (
	"math"

	"BreakoutSniper/internal/model"
)

// RollingMean computes a simple trailing mean over the given period.
// The first period-1 positions, and any window containing an undefined
// value, come back as NaN so they can never satisfy a filter comparison.
func RollingMean(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}
	if period <= 0 || len(values) < period {
		return out
	}
	for i := period - 1; i < len(values); i++ {
		sum := 0.0
		defined := true
		for j := i - period + 1; j <= i; j++ {
			if math.IsNaN(values[j]) {
				defined = false
				break
			}
			sum += values[j]
		}
		if defined {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// Mean returns the plain average of values, or NaN for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// ExtractCloses pulls the close column out of a bar slice.
func ExtractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

// ExtractVolumes pulls the volume column out of a bar slice.
func ExtractVolumes(bars []model.OHLCV) []float64 {
	volumes := make([]float64, len(bars))
	for i, b := range bars {
		volumes[i] = b.Volume
	}
	return volumes
}
