package collector

import (
	"context"
	"fmt"

	"BreakoutSniper/internal/calculator"
	"BreakoutSniper/internal/model"
)

// MarketTide checks the broad market: the benchmark's last close against
// its trailing simple average. A failed check is treated as neutral rather
// than blocking the scan.
func MarketTide(ctx context.Context, fetcher Fetcher, benchmark string, period, daysBack int) (healthy bool, status string) {
	bySymbol, err := fetcher.FetchDailyBars(ctx, []string{benchmark}, daysBack)
	if err != nil {
		return true, fmt.Sprintf("tide check failed (%v), assuming neutral", err)
	}
	bars := bySymbol[benchmark]
	if len(bars) < period {
		return true, "tide check failed (insufficient history), assuming neutral"
	}

	closes := calculator.ExtractCloses(bars)
	last := closes[len(closes)-1]
	sma := calculator.Mean(closes[len(closes)-period:])
	if !model.Defined(sma) {
		return true, "tide check failed (undefined average), assuming neutral"
	}

	status = fmt.Sprintf("%s: $%.2f (SMA%d: $%.2f)", benchmark, last, period, sma)
	if last > sma {
		return true, "MARKET HEALTHY. " + status
	}
	return false, "MARKET DOWN. " + status
}
