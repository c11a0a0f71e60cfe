package model

import "time"

// OHLCV represents a single daily candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Series holds the raw daily price history for one symbol. Bars are
// chronological, one per trading session, and never mutated after the
// collector produces them.
type Series struct {
	Symbol    string
	Bars      []OHLCV
	FetchedAt time.Time
}

// LastClose returns the close of the most recent bar, or 0 for an empty series.
func (s *Series) LastClose() float64 {
	if len(s.Bars) == 0 {
		return 0
	}
	return s.Bars[len(s.Bars)-1].Close
}
