// Package parmap is an order-preserving parallel map for independent,
// side-effect-free per-item computations.
package parmap

import (
	"runtime"
	"sync"
)

// Map applies fn to every element of in using up to workers goroutines and
// returns results in input order. workers <= 0 means runtime.NumCPU().
func Map[T, R any](in []T, workers int, fn func(T) R) []R {
	out := make([]R, len(in))
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(in) {
		workers = len(in)
	}
	if workers <= 1 {
		for i, v := range in {
			out[i] = fn(v)
		}
		return out
	}
	idx := make(chan int, workers*2)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range idx {
				out[i] = fn(in[i])
			}
		}()
	}
	for i := range in {
		idx <- i
	}
	close(idx)
	wg.Wait()
	return out
}
