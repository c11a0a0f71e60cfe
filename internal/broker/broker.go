package broker

import (
	"context"

	"BreakoutSniper/internal/model"
)

// Account is the slice of brokerage account state the sizer needs.
type Account struct {
	Equity        float64
	DayTradeCount int
}

// Broker defines the brokerage collaborator: account/position state in,
// bracket orders out. All state is re-queried each run; the pipeline keeps
// no memory of prior activity.
type Broker interface {
	Account(ctx context.Context) (Account, error)
	Positions(ctx context.Context) ([]model.Position, error)
	OpenOrderSymbols(ctx context.Context) ([]string, error)
	SubmitBracket(ctx context.Context, plan model.PositionPlan) error
	Name() string
}
