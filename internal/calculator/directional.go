package calculator

import (
	"math"

	"BreakoutSniper/internal/model"
)

// TrueRangeSeries computes the per-bar true range: the largest of the
// bar's own range and the gaps from the previous close. The first bar
// has no previous close and is undefined.
func TrueRangeSeries(bars []model.OHLCV) []float64 {
	tr := make([]float64, len(bars))
	if len(bars) > 0 {
		tr[0] = math.NaN()
	}
	for i := 1; i < len(bars); i++ {
		hl := bars[i].High - bars[i].Low
		hc := math.Abs(bars[i].High - bars[i-1].Close)
		lc := math.Abs(bars[i].Low - bars[i-1].Close)
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}
	return tr
}

// DirectionalMovement computes the per-bar +DM and -DM series. A move only
// counts in one direction, and only when it is both dominant and positive.
func DirectionalMovement(bars []model.OHLCV) (plusDM, minusDM []float64) {
	plusDM = make([]float64, len(bars))
	minusDM = make([]float64, len(bars))
	if len(bars) > 0 {
		plusDM[0] = math.NaN()
		minusDM[0] = math.NaN()
	}
	for i := 1; i < len(bars); i++ {
		up := bars[i].High - bars[i-1].High
		down := bars[i-1].Low - bars[i].Low
		plusDM[i] = 0
		minusDM[i] = 0
		if up > down && up > 0 {
			plusDM[i] = up
		}
		if down > up && down > 0 {
			minusDM[i] = down
		}
	}
	return plusDM, minusDM
}
