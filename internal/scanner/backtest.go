package scanner

import (
	"iter"

	"BreakoutSniper/internal/model"
)

// SignalEvents yields, in chronological order, every bar index at which the
// rule fired across the whole series. The sequence is finite and single-use.
func SignalEvents(bars []model.OHLCV, frames []model.IndicatorFrame) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 1; i < len(bars); i++ {
			if FiresAt(bars, frames, i) {
				if !yield(i) {
					return
				}
			}
		}
	}
}

// Backtest replays every historical firing of the rule on this symbol and
// classifies each as a win iff the close `horizon` sessions later exceeds
// the close at the signal bar. Events too close to the end of the series
// have no evaluation bar and are excluded from the total.
func Backtest(bars []model.OHLCV, frames []model.IndicatorFrame, horizon int) model.BacktestResult {
	var res model.BacktestResult
	for i := range SignalEvents(bars, frames) {
		if i+horizon >= len(bars) {
			continue
		}
		res.Total++
		if bars[i+horizon].Close > bars[i].Close {
			res.Wins++
		}
	}
	return res
}
