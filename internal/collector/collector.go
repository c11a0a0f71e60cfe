package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"BreakoutSniper/internal/model"
)

// Collector fetches the symbol universe in provider-friendly batches and
// packages the results into per-symbol series.
type Collector struct {
	fetcher   Fetcher
	batchSize int
	daysBack  int
	log       zerolog.Logger
}

// NewCollector creates a Collector.
func NewCollector(fetcher Fetcher, batchSize, daysBack int, log zerolog.Logger) *Collector {
	if batchSize < 1 {
		batchSize = 100
	}
	return &Collector{
		fetcher:   fetcher,
		batchSize: batchSize,
		daysBack:  daysBack,
		log:       log.With().Str("component", "collector").Logger(),
	}
}

// CollectUniverse fetches daily history for every symbol, batch by batch.
// A failed batch excludes its symbols from the run but never aborts it;
// per-batch failures come back as messages for the run summary. Series are
// returned in universe order, skipping symbols the provider had no data for.
func (c *Collector) CollectUniverse(ctx context.Context, symbols []string) (series []*model.Series, failures []string) {
	fetchedAt := time.Now()
	for i := 0; i < len(symbols); i += c.batchSize {
		if ctx.Err() != nil {
			failures = append(failures, fmt.Sprintf("batch %d: canceled", i))
			return series, failures
		}
		end := i + c.batchSize
		if end > len(symbols) {
			end = len(symbols)
		}
		batch := symbols[i:end]

		bySymbol, err := c.fetcher.FetchDailyBars(ctx, batch, c.daysBack)
		if err != nil {
			c.log.Error().Err(err).Int("batch_start", i).Msg("batch fetch failed")
			failures = append(failures, fmt.Sprintf("batch %d: %v", i, err))
			continue
		}
		for _, sym := range batch {
			bars, ok := bySymbol[sym]
			if !ok || len(bars) == 0 {
				continue
			}
			series = append(series, &model.Series{Symbol: sym, Bars: bars, FetchedAt: fetchedAt})
		}
	}
	return series, failures
}
