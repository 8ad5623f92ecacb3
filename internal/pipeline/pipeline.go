package pipeline

import (
	"context"
	"sync"

	"ligysis/internal/input"
	"ligysis/internal/segment"
)

// Config controls the segment pipeline.
type Config struct {
	Threads int // number of worker goroutines (>=1)
	Options segment.Options
}

// Outcome is the result of one manifest entry. Err is set when the segment
// failed; other segments are unaffected.
type Outcome struct {
	Index  int
	Entry  input.Entry
	Result segment.Result
	Err    error
}

// RunFunc analyses one entry. segment.LoadAndRun is the production RunFunc.
type RunFunc func(input.Entry, segment.Options) (segment.Result, error)

// ForEachSegment runs every entry through run and calls visit once per entry
// in input order, whatever the thread count. It stops early and returns the
// first visit error or the context error.
func ForEachSegment(
	ctx context.Context,
	cfg Config,
	entries []input.Entry,
	run RunFunc,
	visit func(Outcome) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	if run == nil {
		run = segment.LoadAndRun
	}
	// Segments already run in parallel; per-column parallelism inside one
	// segment would only oversubscribe.
	if cfg.Threads > 1 {
		cfg.Options.Workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type job struct {
		idx   int
		entry input.Entry
	}
	jobs := make(chan job, cfg.Threads*2)
	results := make(chan Outcome, cfg.Threads*2)

	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					res, err := run(j.entry, cfg.Options)
					select {
					case results <- Outcome{Index: j.idx, Entry: j.entry, Result: res, Err: err}:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector: buffer out-of-order outcomes until their turn.
	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		pending := make(map[int]Outcome)
		next := 0
		for o := range results {
			if cerr != nil {
				continue
			}
			pending[o.Index] = o
			for {
				cur, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				if err := visit(cur); err != nil {
					cerr = err
					cancel()
					break
				}
			}
		}
	}()

feed:
	for i, e := range entries {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- job{idx: i, entry: e}:
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if cerr != nil {
		return cerr
	}
	return ctx.Err()
}
