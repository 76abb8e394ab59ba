package dynamo

import (
	"context"
	"runtime"
	"sync"
)

// Run is one member of an Ensemble: a simulator and its initial state.
type Run struct {
	Sim *Simulator
	X0  State
}

type Ensemble struct {
	runs []Run
}

func NewEnsemble(runs ...Run) *Ensemble {
	return &Ensemble{runs: runs}
}

// Run executes every member concurrently. Members must not share an
// integrator. Results keep the order the runs were given in.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(e.runs))
	errs := make([]error, len(e.runs))

	var wg sync.WaitGroup
	for i := range e.runs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			r := e.runs[idx]
			results[idx], errs[idx] = r.Sim.Run(ctx, r.X0, cfg)
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

// ParallelFor executes a function in parallel over a range [0, n)
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	numWorkers := runtime.NumCPU()
	if minChunk < 1 {
		minChunk = 1
	}
	if n <= minChunk || numWorkers <= 1 {
		fn(0, n)
		return
	}

	workers := numWorkers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup

	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}
