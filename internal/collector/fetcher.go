package collector

import (
	"context"

	"BreakoutSniper/internal/model"
)

// Fetcher defines the interface for fetching daily bar history.
type Fetcher interface {
	// FetchDailyBars returns up to daysBack calendar days of daily bars for
	// each requested symbol. Symbols with no data are simply absent from
	// the result.
	FetchDailyBars(ctx context.Context, symbols []string, daysBack int) (map[string][]model.OHLCV, error)
	Name() string
}
