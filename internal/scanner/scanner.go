package scanner

import (
	"math"

	"github.com/rs/zerolog"

	"BreakoutSniper/internal/calculator"
	"BreakoutSniper/internal/model"
)

// Scanner evaluates one symbol at a time: liquidity gate, indicator
// computation, live signal on the last bar, then the self-backtest.
type Scanner struct {
	rule Rule
	log  zerolog.Logger
}

// New creates a Scanner with the given rule parameters.
func New(rule Rule, log zerolog.Logger) *Scanner {
	return &Scanner{rule: rule, log: log.With().Str("component", "scanner").Logger()}
}

// Rule returns the parameter set the scanner was built with.
func (s *Scanner) Rule() Rule { return s.rule }

// ScanSymbol runs the full per-symbol pipeline and returns either a
// candidate or a typed rejection. It never returns an error: every failure
// mode is a funnel outcome.
func (s *Scanner) ScanSymbol(series *model.Series) model.Outcome {
	out := model.Outcome{Symbol: series.Symbol}

	bars := series.Bars
	if len(bars) < s.rule.MinBars {
		out.Reason = model.RejectInsufficientData
		return out
	}

	if !s.rule.LiquidityOK(bars) {
		out.Reason = model.RejectLiquidity
		return out
	}

	frames := calculator.ComputeFrames(bars, s.rule.Periods)
	last := len(bars) - 1

	if !TrendOK(bars, frames, last) {
		out.Reason = model.RejectTrend
		return out
	}
	if !MomentumOK(frames, last) {
		out.Reason = model.RejectMomentum
		return out
	}

	res := Backtest(bars, frames, s.rule.Horizon)
	out.Backtest = res
	if res.Total == 0 {
		out.Reason = model.RejectNoEvidence
		return out
	}

	winRate := res.WinRate()
	if winRate < s.rule.WinRateThreshold {
		out.Reason = model.RejectLowWinRate
		return out
	}

	out.Candidate = &model.Candidate{
		Symbol:  series.Symbol,
		WinRate: math.Round(winRate*10) / 10,
		Price:   math.Round(bars[last].Close*100) / 100,
	}
	s.log.Debug().
		Str("symbol", series.Symbol).
		Float64("win_rate", out.Candidate.WinRate).
		Int("signals", res.Total).
		Msg("candidate found")
	return out
}
