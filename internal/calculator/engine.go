package calculator

import (
	"math"

	"BreakoutSniper/internal/model"
)

// Periods configures the rolling windows used by ComputeFrames.
type Periods struct {
	SMAFast     int // default 10
	SMASlow     int // default 20
	Directional int // default 14
}

// DefaultPeriods matches the windows the scan rule was tuned with.
func DefaultPeriods() Periods {
	return Periods{SMAFast: 10, SMASlow: 20, Directional: 14}
}

// ComputeFrames derives the full indicator set for a bar series, one frame
// per bar, aligned by position. Leading values whose windows are not full
// yet are NaN. Frames are computed once per symbol and never amended.
func ComputeFrames(bars []model.OHLCV, p Periods) []model.IndicatorFrame {
	closes := ExtractCloses(bars)
	sma10 := RollingMean(closes, p.SMAFast)
	sma20 := RollingMean(closes, p.SMASlow)

	tr := TrueRangeSeries(bars)
	plusDM, minusDM := DirectionalMovement(bars)

	avgTR := RollingMean(tr, p.Directional)
	avgPlusDM := RollingMean(plusDM, p.Directional)
	avgMinusDM := RollingMean(minusDM, p.Directional)

	plusDI := make([]float64, len(bars))
	minusDI := make([]float64, len(bars))
	dx := make([]float64, len(bars))
	for i := range bars {
		plusDI[i] = directionalIndex(avgPlusDM[i], avgTR[i])
		minusDI[i] = directionalIndex(avgMinusDM[i], avgTR[i])
		dx[i] = directionalDivergence(plusDI[i], minusDI[i])
	}
	adx := RollingMean(dx, p.Directional)

	frames := make([]model.IndicatorFrame, len(bars))
	for i := range bars {
		frames[i] = model.IndicatorFrame{
			SMA10:     sma10[i],
			SMA20:     sma20[i],
			TrueRange: tr[i],
			PlusDM:    plusDM[i],
			MinusDM:   minusDM[i],
			PlusDI:    plusDI[i],
			MinusDI:   minusDI[i],
			DX:        dx[i],
			ADX:       adx[i],
		}
	}
	return frames
}

func directionalIndex(avgDM, avgTR float64) float64 {
	if math.IsNaN(avgDM) || math.IsNaN(avgTR) || avgTR == 0 {
		return math.NaN()
	}
	return 100 * avgDM / avgTR
}

// directionalDivergence returns DX. A zero denominator yields 0 rather than
// NaN so a flat stretch does not poison the ADX rolling mean.
func directionalDivergence(plusDI, minusDI float64) float64 {
	if math.IsNaN(plusDI) || math.IsNaN(minusDI) {
		return math.NaN()
	}
	denom := plusDI + minusDI
	if denom == 0 {
		return 0
	}
	return 100 * math.Abs(plusDI-minusDI) / denom
}
