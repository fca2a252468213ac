package sim

import (
	"context"
	"sync"

	"github.com/san-kum/cartpole/internal/cartpole"
)

// Ensemble plays many independent episodes in parallel. Each run gets its
// own Runner from build so policies and metrics never share state, and a
// distinct seed so Seedable policies diverge.
type Ensemble struct {
	build     func(seed int64) *Runner
	numRuns   int
	seedStart int64
}

func NewEnsemble(build func(seed int64) *Runner, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{build: build, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, start cartpole.State, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			results[idx], errs[idx] = e.build(cfgCopy.Seed).Run(ctx, start, cfgCopy)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
