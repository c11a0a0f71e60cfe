package scanner

import (
	"context"
	"sync"

	"BreakoutSniper/internal/model"
)

// ScanAll fans the per-symbol pipeline out over a bounded pool of workers
// and joins before returning. Outcomes come back in input order, which is
// what keeps the ranker's tie-break deterministic. Cancellation stops the
// run between symbols; outcomes already produced are kept.
func (s *Scanner) ScanAll(ctx context.Context, series []*model.Series, workers int) []model.Outcome {
	if workers < 1 {
		workers = 1
	}
	if workers > len(series) {
		workers = len(series)
	}

	outcomes := make([]model.Outcome, len(series))
	jobs := make(chan int, len(series))
	for i := range series {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case i, ok := <-jobs:
					if !ok {
						return
					}
					outcomes[i] = s.ScanSymbol(series[i])
				}
			}
		}()
	}
	wg.Wait()
	return outcomes
}
