package scanner

import (
	"math"
	"testing"

	"BreakoutSniper/internal/model"
)

func barsWithVolume(closes []float64, volume float64) []model.OHLCV {
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{Open: c, High: c * 1.005, Low: c * 0.995, Close: c, Volume: volume}
	}
	return bars
}

func TestLiquidityOK(t *testing.T) {
	rule := DefaultRule()

	makeBars := func(price, baseVol, lastVol float64) []model.OHLCV {
		closes := make([]float64, 30)
		for i := range closes {
			closes[i] = price
		}
		bars := barsWithVolume(closes, baseVol)
		bars[len(bars)-1].Volume = lastVol
		return bars
	}

	tests := []struct {
		name string
		bars []model.OHLCV
		want bool
	}{
		{"healthy", makeBars(5.0, 200000, 300000), true},
		{"penny stock", makeBars(0.50, 200000, 300000), false},
		{"thin volume", makeBars(5.0, 50000, 75000), false},
		{"no relative spike", makeBars(5.0, 200000, 200000), false},
		{"too short", barsWithVolume([]float64{5, 5, 5}, 200000), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rule.LiquidityOK(tt.bars); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestLiquidityOK_TrailingAverageExcludesLastBar(t *testing.T) {
	rule := DefaultRule()
	rule.MinAvgVolume = 100000
	rule.MinRelativeVolume = 1.2

	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 5
	}
	// Trailing bars sit just under the floor; a huge last bar must not
	// rescue the average.
	bars := barsWithVolume(closes, 99999)
	bars[len(bars)-1].Volume = 10000000
	if rule.LiquidityOK(bars) {
		t.Error("spike bar must be excluded from the trailing average")
	}
}

func TestTrendOK(t *testing.T) {
	bars := []model.OHLCV{{Close: 11}}
	tests := []struct {
		name  string
		frame model.IndicatorFrame
		want  bool
	}{
		{"rising chain", model.IndicatorFrame{SMA10: 10.5, SMA20: 10}, true},
		{"flat chain", model.IndicatorFrame{SMA10: 11, SMA20: 11}, false},
		{"inverted", model.IndicatorFrame{SMA10: 10, SMA20: 10.5}, false},
		{"undefined fast", model.IndicatorFrame{SMA10: math.NaN(), SMA20: 10}, false},
		{"undefined slow", model.IndicatorFrame{SMA10: 10.5, SMA20: math.NaN()}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrendOK(bars, []model.IndicatorFrame{tt.frame}, 0); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTrendOK_FlatDataNeverFires(t *testing.T) {
	// Constant close: SMA10 == SMA20 == close, strict chain fails.
	bars := []model.OHLCV{{Close: 7}}
	frames := []model.IndicatorFrame{{SMA10: 7, SMA20: 7}}
	if TrendOK(bars, frames, 0) {
		t.Error("flat data must not satisfy the strict trend chain")
	}
}

func TestMomentumOK(t *testing.T) {
	frames := []model.IndicatorFrame{
		{ADX: 20},
		{ADX: 25},
		{ADX: 25},
		{ADX: math.NaN()},
		{ADX: 30},
	}
	tests := []struct {
		name string
		i    int
		want bool
	}{
		{"rising", 1, true},
		{"flat", 2, false},
		{"undefined today", 3, false},
		{"undefined yesterday", 4, false},
		{"first bar", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MomentumOK(frames, tt.i); got != tt.want {
				t.Errorf("index %d: expected %v, got %v", tt.i, tt.want, got)
			}
		})
	}
}
