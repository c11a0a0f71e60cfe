package sizing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"BreakoutSniper/internal/model"
)

// Brackets configures the exit legs of a bracket order. The pairs vary by
// deployment (3%/1% and 4.5%/1.5% are both in use), so they are config,
// not constants.
type Brackets struct {
	TargetPct    float64
	StopPct      float64
	TickDecimals int32 // minimum price increment, 2 for US equities
}

// Planner converts sized allocations into bracket order plans. It performs
// no I/O; the broker collaborator submits the plans.
type Planner struct {
	brackets Brackets
}

// NewPlanner creates a Planner with the given bracket percentages.
func NewPlanner(b Brackets) *Planner {
	return &Planner{brackets: b}
}

// BuildPlan produces the entry/take-profit/stop triple for one allocation.
// Exit prices are rounded to the instrument's minimum increment.
func (p *Planner) BuildPlan(a Allocation) (model.PositionPlan, error) {
	if a.Candidate.Price <= 0 {
		return model.PositionPlan{}, fmt.Errorf("plan %s: non-positive price %.4f", a.Candidate.Symbol, a.Candidate.Price)
	}
	if a.Quantity < 1 {
		return model.PositionPlan{}, fmt.Errorf("plan %s: quantity %d below one share", a.Candidate.Symbol, a.Quantity)
	}

	price := decimal.NewFromFloat(a.Candidate.Price)
	entry := price.Round(p.brackets.TickDecimals)
	take := price.Mul(decimal.NewFromFloat(1 + p.brackets.TargetPct)).Round(p.brackets.TickDecimals)
	stop := price.Mul(decimal.NewFromFloat(1 - p.brackets.StopPct)).Round(p.brackets.TickDecimals)

	return model.PositionPlan{
		Symbol:          a.Candidate.Symbol,
		Quantity:        a.Quantity,
		EntryPrice:      entry.InexactFloat64(),
		TakeProfitPrice: take.InexactFloat64(),
		StopPrice:       stop.InexactFloat64(),
	}, nil
}
