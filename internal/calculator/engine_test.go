package calculator

import (
	"math"
	"testing"

	"BreakoutSniper/internal/model"
)

func flatBars(c float64, n int) []model.OHLCV {
	bars := make([]model.OHLCV, n)
	for i := range bars {
		bars[i] = model.OHLCV{Open: c, High: c, Low: c, Close: c, Volume: 1000}
	}
	return bars
}

func TestRollingMean_LeadingUndefined(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	out := RollingMean(values, 3)
	for i := 0; i < 2; i++ {
		if !math.IsNaN(out[i]) {
			t.Errorf("index %d: expected NaN before window fills, got %v", i, out[i])
		}
	}
	want := []float64{2, 3, 4}
	for i, w := range want {
		if got := out[i+2]; got != w {
			t.Errorf("index %d: expected %v, got %v", i+2, w, got)
		}
	}
}

func TestRollingMean_NaNPoisonsWindow(t *testing.T) {
	values := []float64{math.NaN(), 2, 3, 4, 5}
	out := RollingMean(values, 3)
	if !math.IsNaN(out[2]) {
		t.Errorf("window containing NaN should be undefined, got %v", out[2])
	}
	if out[4] != 4 {
		t.Errorf("first clean window should be 4, got %v", out[4])
	}
}

func TestRollingMean_ShortSeries(t *testing.T) {
	out := RollingMean([]float64{1, 2}, 5)
	for i, v := range out {
		if !math.IsNaN(v) {
			t.Errorf("index %d: expected NaN for series shorter than period, got %v", i, v)
		}
	}
}

func TestTrueRangeSeries(t *testing.T) {
	bars := []model.OHLCV{
		{High: 11, Low: 10, Close: 10.5},
		{High: 12, Low: 11, Close: 11.5},  // plain range 1
		{High: 12, Low: 11.8, Close: 12},  // gap up from 11.5: |12-11.5|=0.5 > 0.2
		{High: 10, Low: 9.5, Close: 9.8},  // gap down: |9.5-12|=2.5 dominates
	}
	tr := TrueRangeSeries(bars)
	if !math.IsNaN(tr[0]) {
		t.Errorf("first bar has no previous close, expected NaN, got %v", tr[0])
	}
	want := []float64{1, 0.5, 2.5}
	for i, w := range want {
		if math.Abs(tr[i+1]-w) > 1e-9 {
			t.Errorf("bar %d: expected TR %v, got %v", i+1, w, tr[i+1])
		}
	}
}

func TestDirectionalMovement(t *testing.T) {
	bars := []model.OHLCV{
		{High: 10, Low: 9},
		{High: 11, Low: 9.5},  // up 1, down -0.5: +DM only
		{High: 10.5, Low: 8},  // up -0.5, down 1.5: -DM only
		{High: 10.5, Low: 8},  // both zero
		{High: 11.5, Low: 7},  // up 1, down 1: tie, neither counts
	}
	plus, minus := DirectionalMovement(bars)
	if !math.IsNaN(plus[0]) || !math.IsNaN(minus[0]) {
		t.Error("first bar should be undefined")
	}
	checks := []struct {
		i           int
		plus, minus float64
	}{
		{1, 1, 0},
		{2, 0, 1.5},
		{3, 0, 0},
		{4, 0, 0},
	}
	for _, c := range checks {
		if plus[c.i] != c.plus || minus[c.i] != c.minus {
			t.Errorf("bar %d: expected +DM=%v -DM=%v, got +DM=%v -DM=%v",
				c.i, c.plus, c.minus, plus[c.i], minus[c.i])
		}
	}
}

func TestComputeFrames_FlatSeries(t *testing.T) {
	bars := flatBars(42, 30)
	frames := ComputeFrames(bars, DefaultPeriods())

	last := frames[len(frames)-1]
	if last.SMA10 != 42 || last.SMA20 != 42 {
		t.Errorf("flat series: expected SMA10=SMA20=42, got %v / %v", last.SMA10, last.SMA20)
	}
	// close > SMA10 > SMA20 must not hold on flat data
	if bars[len(bars)-1].Close > last.SMA10 && last.SMA10 > last.SMA20 {
		t.Error("strict trend chain must be false on flat data")
	}
}

func TestComputeFrames_UndefinedLeading(t *testing.T) {
	bars := flatBars(10, 40)
	frames := ComputeFrames(bars, DefaultPeriods())
	for i := 0; i < 9; i++ {
		if model.Defined(frames[i].SMA10) {
			t.Errorf("bar %d: SMA10 should be undefined before the window fills", i)
		}
	}
	if !model.Defined(frames[9].SMA10) {
		t.Error("bar 9: SMA10 should be defined")
	}
	for i := 0; i < 19; i++ {
		if model.Defined(frames[i].SMA20) {
			t.Errorf("bar %d: SMA20 should be undefined before the window fills", i)
		}
	}
}

func TestDirectionalDivergence_ZeroDenominator(t *testing.T) {
	// Inside bars: lower highs and higher lows give zero DM both ways,
	// while the shrinking range keeps true range positive.
	bars := make([]model.OHLCV, 40)
	high, low := 100.0, 50.0
	for i := range bars {
		bars[i] = model.OHLCV{High: high, Low: low, Close: (high + low) / 2}
		high -= 0.5
		low += 0.5
	}
	frames := ComputeFrames(bars, DefaultPeriods())
	last := frames[len(frames)-1]
	if !model.Defined(last.PlusDI) || last.PlusDI != 0 || last.MinusDI != 0 {
		t.Fatalf("expected both DI zero, got +DI=%v -DI=%v", last.PlusDI, last.MinusDI)
	}
	if last.DX != 0 {
		t.Errorf("DX with zero denominator must be 0, not NaN; got %v", last.DX)
	}
	if !model.Defined(last.ADX) {
		t.Error("ADX should stay defined when DX collapses to 0")
	}
}

func TestMean(t *testing.T) {
	if got := Mean([]float64{2, 4, 6}); got != 4 {
		t.Errorf("expected mean 4, got %v", got)
	}
	if !math.IsNaN(Mean(nil)) {
		t.Error("mean of empty slice should be NaN")
	}
}
