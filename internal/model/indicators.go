package model

import "math"

// IndicatorFrame holds the derived values for one bar, aligned by position
// with the Series it was computed from. A NaN value means the rolling window
// behind it is not full yet; NaN must never satisfy a filter condition.
type IndicatorFrame struct {
	SMA10     float64
	SMA20     float64
	TrueRange float64
	PlusDM    float64
	MinusDM   float64
	PlusDI    float64
	MinusDI   float64
	DX        float64
	ADX       float64
}

// Defined reports whether v carries a usable value.
func Defined(v float64) bool {
	return !math.IsNaN(v)
}
