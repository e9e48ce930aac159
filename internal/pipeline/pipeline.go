package pipeline

import (
	"context"
	"runtime"
	"sync"
)

// Scorer scores the candidate at position index.
type Scorer func(ctx context.Context, index int, path string) (float64, error)

type Outcome struct {
	Index int
	Path  string
	Score float64
	Err   error
}

// ScoreAll runs fn over every candidate with at most workers goroutines.
// Outcomes come back in candidate order; a failing candidate does not stop
// the others.
func ScoreAll(ctx context.Context, candidates []string, workers int, fn Scorer) []Outcome {
	if len(candidates) == 0 || fn == nil {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers < 1 {
			workers = 1
		}
	}
	if workers > len(candidates) {
		workers = len(candidates)
	}

	jobs := make(chan int)
	out := make([]Outcome, len(candidates))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				path := candidates[i]
				if err := ctx.Err(); err != nil {
					out[i] = Outcome{Index: i, Path: path, Err: err}
					continue
				}
				score, err := fn(ctx, i, path)
				out[i] = Outcome{Index: i, Path: path, Score: score, Err: err}
			}
		}()
	}

	for i := range candidates {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return out
}
