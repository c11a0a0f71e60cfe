package scanner

import (
	"BreakoutSniper/internal/calculator"
	"BreakoutSniper/internal/model"
)

// Rule bundles every tunable of the breakout rule. All values come from
// configuration at construction; nothing here is a hardcoded literal.
type Rule struct {
	MinBars           int
	MinPrice          float64
	MinAvgVolume      float64
	MinRelativeVolume float64
	VolumeLookback    int
	WinRateThreshold  float64
	Horizon           int
	Periods           calculator.Periods
}

// DefaultRule returns the parameter set the rule has been run with in
// production deployments.
func DefaultRule() Rule {
	return Rule{
		MinBars:           50,
		MinPrice:          1.0,
		MinAvgVolume:      100000,
		MinRelativeVolume: 1.2,
		VolumeLookback:    20,
		WinRateThreshold:  50.0,
		Horizon:           3,
		Periods:           calculator.DefaultPeriods(),
	}
}

// LiquidityOK applies the cheap pre-indicator gate: price floor, trailing
// average volume floor, and a relative-volume spike on the last bar. The
// trailing average excludes the current bar so the spike itself cannot
// inflate the baseline.
func (r Rule) LiquidityOK(bars []model.OHLCV) bool {
	n := len(bars)
	if n < r.VolumeLookback+1 {
		return false
	}
	if bars[n-1].Close < r.MinPrice {
		return false
	}
	volumes := calculator.ExtractVolumes(bars)
	avgVol := calculator.Mean(volumes[n-1-r.VolumeLookback : n-1])
	if !model.Defined(avgVol) || avgVol < r.MinAvgVolume {
		return false
	}
	return bars[n-1].Volume/avgVol >= r.MinRelativeVolume
}

// TrendOK reports whether the strict trend chain close > SMA10 > SMA20
// holds at bar i. Undefined indicator values never pass.
func TrendOK(bars []model.OHLCV, frames []model.IndicatorFrame, i int) bool {
	f := frames[i]
	if !model.Defined(f.SMA10) || !model.Defined(f.SMA20) {
		return false
	}
	return bars[i].Close > f.SMA10 && f.SMA10 > f.SMA20
}

// MomentumOK reports whether ADX is rising into bar i.
func MomentumOK(frames []model.IndicatorFrame, i int) bool {
	if i < 1 {
		return false
	}
	if !model.Defined(frames[i].ADX) || !model.Defined(frames[i-1].ADX) {
		return false
	}
	return frames[i].ADX > frames[i-1].ADX
}

// FiresAt reports whether the full rule (trend and momentum) holds at bar i.
func FiresAt(bars []model.OHLCV, frames []model.IndicatorFrame, i int) bool {
	return TrendOK(bars, frames, i) && MomentumOK(frames, i)
}
