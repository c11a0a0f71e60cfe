package collector

import (
	"context"
	"time"

	"BreakoutSniper/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Data map[string][]model.OHLCV
	Err  error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, symbols []string, _ int) (map[string][]model.OHLCV, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make(map[string][]model.OHLCV, len(symbols))
	for _, sym := range symbols {
		if bars, ok := m.Data[sym]; ok {
			out[sym] = bars
		}
	}
	return out, nil
}

// GenerateBars builds a synthetic rising series for fixtures: count bars
// ending today, closes stepping linearly from first to last.
func GenerateBars(first, last float64, volume float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	step := 0.0
	if count > 1 {
		step = (last - first) / float64(count-1)
	}
	for i := 0; i < count; i++ {
		c := first + step*float64(i)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   c * 0.999,
			High:   c * 1.005,
			Low:    c * 0.995,
			Close:  c,
			Volume: volume,
		}
	}
	return bars
}
