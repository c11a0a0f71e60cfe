package model

// RejectReason classifies why a symbol fell out of the scan funnel.
// These are ordinary filter outcomes, not errors.
type RejectReason string

const (
	RejectNone             RejectReason = ""
	RejectInsufficientData RejectReason = "INSUFFICIENT_DATA"
	RejectLiquidity        RejectReason = "LIQUIDITY"
	RejectTrend            RejectReason = "TREND"
	RejectMomentum         RejectReason = "MOMENTUM"
	RejectNoEvidence       RejectReason = "NO_BACKTEST_EVIDENCE"
	RejectLowWinRate       RejectReason = "BELOW_WIN_RATE"
	RejectFetchError       RejectReason = "FETCH_ERROR"
)

// BacktestResult aggregates the historical replay of the rule on one symbol.
// WinRate is meaningful only when Total > 0.
type BacktestResult struct {
	Wins  int
	Total int
}

// WinRate returns wins/total as a percentage. Callers must check Total first.
func (r BacktestResult) WinRate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Total) * 100
}

// Candidate is a symbol that fired the rule today and survived the
// self-backtest threshold.
type Candidate struct {
	Symbol  string
	WinRate float64
	Price   float64
}

// Outcome is the per-symbol result of one scan: either a candidate or a
// typed rejection. Exactly one of Candidate/Reason is set.
type Outcome struct {
	Symbol    string
	Candidate *Candidate
	Reason    RejectReason
	Backtest  BacktestResult
}

// FunnelStats counts symbols surviving each filter stage of a run.
type FunnelStats struct {
	Attempted       int
	ValidSeries     int
	PassedLiquidity int
	PassedTrend     int
	PassedBacktest  int
}

// RunSummary is the structured result of one full scan run, handed to the
// reporting collaborator and to the recorder.
type RunSummary struct {
	Stats         FunnelStats
	Candidates    []Candidate
	Plans         []PositionPlan
	Blocked       bool
	BlockedReason string
	TideHealthy   bool
	TideStatus    string
	ExecutionLog  []string
	Errors        []string
}
