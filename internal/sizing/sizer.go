package sizing

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"BreakoutSniper/internal/model"
)

// Allocation is a candidate with a share count attached, ready for the
// order planner.
type Allocation struct {
	Candidate model.Candidate
	Quantity  int64
	SlotCash  float64
}

// Sizer turns ranked candidates into equal-weight allocations under the
// account's equity, per-slot, count, and PDT constraints.
type Sizer struct {
	log zerolog.Logger
}

// NewSizer creates a Sizer.
func NewSizer(log zerolog.Logger) *Sizer {
	return &Sizer{log: log.With().Str("component", "sizer").Logger()}
}

// Allocate sizes the ranked candidates. Symbols in taken (already held or
// with a pending buy) are removed first. If the PDT guard applies, the
// whole run is blocked and no allocations are produced. Candidates whose
// slot cannot buy a single share are dropped silently.
func (s *Sizer) Allocate(ranked []model.Candidate, rc model.RiskConstraints, taken map[string]bool) (allocs []Allocation, blocked bool, reason string) {
	fresh := make([]model.Candidate, 0, len(ranked))
	for _, c := range ranked {
		if taken[c.Symbol] {
			continue
		}
		fresh = append(fresh, c)
	}
	if len(fresh) == 0 {
		return nil, false, ""
	}

	if rc.Equity < rc.PDTEquityThreshold && rc.DayTradeCount >= rc.PDTDayTradeLimit {
		reason = fmt.Sprintf("PDT guard: equity %.2f below %.2f with %d day trades",
			rc.Equity, rc.PDTEquityThreshold, rc.DayTradeCount)
		s.log.Warn().Msg(reason)
		return nil, true, reason
	}

	if rc.MaxCandidates > 0 && len(fresh) > rc.MaxCandidates {
		fresh = fresh[:rc.MaxCandidates]
	}

	slot := math.Min(rc.Equity/float64(len(fresh)), rc.MaxSlotCash)
	for _, c := range fresh {
		if c.Price <= 0 {
			s.log.Warn().Str("symbol", c.Symbol).Float64("price", c.Price).
				Msg("cannot size non-positive price")
			continue
		}
		qty := int64(slot / c.Price)
		if qty < 1 {
			continue
		}
		allocs = append(allocs, Allocation{Candidate: c, Quantity: qty, SlotCash: slot})
	}
	return allocs, false, ""
}
