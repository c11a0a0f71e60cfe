package model

// RiskConstraints bundles the account state and regulatory limits the
// position sizer allocates under. Re-queried from the broker every run.
type RiskConstraints struct {
	Equity             float64
	MaxSlotCash        float64
	MaxCandidates      int
	DayTradeCount      int
	PDTEquityThreshold float64
	PDTDayTradeLimit   int
}

// PositionPlan is a fully sized bracket order: entry quantity plus
// take-profit and stop-loss exits. Built once per run, never mutated,
// handed once to the broker.
type PositionPlan struct {
	Symbol          string
	Quantity        int64
	EntryPrice      float64
	TakeProfitPrice float64
	StopPrice       float64
}

// Notional returns the cash committed by the entry leg.
func (p PositionPlan) Notional() float64 {
	return float64(p.Quantity) * p.EntryPrice
}

// Position is an open holding reported by the broker.
type Position struct {
	Symbol       string
	Quantity     float64
	UnrealizedPL float64
}
