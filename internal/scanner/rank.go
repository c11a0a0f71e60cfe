package scanner

import (
	"sort"

	"BreakoutSniper/internal/model"
)

// Rank orders candidates by win rate, best first. The sort is stable so
// equal win rates keep their scan order and identical inputs always
// produce identical output.
func Rank(candidates []model.Candidate) []model.Candidate {
	ranked := make([]model.Candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].WinRate > ranked[j].WinRate
	})
	return ranked
}

// Candidates extracts the accepted candidates from per-symbol outcomes,
// preserving scan order.
func Candidates(outcomes []model.Outcome) []model.Candidate {
	var out []model.Candidate
	for _, o := range outcomes {
		if o.Candidate != nil {
			out = append(out, *o.Candidate)
		}
	}
	return out
}
