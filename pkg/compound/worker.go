package compound

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/conmol/bracelet52/pkg/bracelet"
	"github.com/conmol/bracelet52/pkg/primitive"
)

// WorkerPool parallelizes the compound search over the outer red loop:
// every candidate bundle is independent, and the cache is read-only
// once populated, so red values can be fanned out across goroutines
// freely. A bounded task channel, one goroutine per worker draining
// it, and a ticking progress reporter.
type WorkerPool struct {
	NumWorkers int
	mu         sync.Mutex
	checked    atomic.Int64
	found      atomic.Int64
	completed  atomic.Int64
}

// NewWorkerPool creates a pool with the given number of workers,
// defaulting to runtime.NumCPU() when numWorkers <= 0.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{NumWorkers: numWorkers}
}

// Stats returns the running totals accumulated over every Run call on
// this pool; Run does not reset them.
func (wp *WorkerPool) Stats() (checked, found, completed int64) {
	return wp.checked.Load(), wp.found.Load(), wp.completed.Load()
}

// Run drains every red value from the suit cache across wp.NumWorkers
// goroutines, each with its own cd/odd/7k handles into cache (the
// cache's shared backing arrays make this cheap: every handle just
// gets its own cursor). SkipRed is honored before fan-out; the
// finer-grained SkipCD/SkipOdd/Skip7K resume counts only make sense
// for the single red value a sequential Search resumes mid-loop on, so
// parallel runs ignore them.
//
// emit is called concurrently from multiple goroutines and must
// synchronize its own state if it is not itself safe for that.
func (wp *WorkerPool) Run(cache *primitive.Cache, dbnPath string, opts Options, skipRed int, verbose bool, emit func(Candidate) bool) error {
	suitPath, valuePath := axisPaths(dbnPath, opts.Strict)

	reds, err := drainAll(cache, suitPath, skipRed)
	if err != nil {
		return err
	}
	total := int64(len(reds))

	ch := make(chan bracelet.Sequence, len(reds))
	for _, r := range reds {
		ch <- r
	}
	close(ch)

	done := make(chan struct{})
	start := time.Now()
	go wp.reportProgress(done, start, total)

	var wg sync.WaitGroup
	var firstErr error
	var errMu sync.Mutex
	for i := 0; i < wp.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cdHandle, err := cache.Open(suitPath)
			if err != nil {
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				errMu.Unlock()
				return
			}
			defer cdHandle.Close()
			oddHandle, err := cache.Open(valuePath)
			if err != nil {
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				errMu.Unlock()
				return
			}
			defer oddHandle.Close()
			c7kHandle, err := cache.Open(valuePath)
			if err != nil {
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				errMu.Unlock()
				return
			}
			defer c7kHandle.Close()

			for task := range ch {
				wrapped := func(c Candidate) bool {
					wp.found.Add(1)
					wp.mu.Lock()
					keep := emit(c)
					wp.mu.Unlock()
					return keep
				}
				runRed(cdHandle, oddHandle, c7kHandle, task, opts, 0, 0, 0, wrapped)
				wp.checked.Add(1)
				wp.completed.Add(1)
			}
		}()
	}
	wg.Wait()
	close(done)

	if verbose {
		elapsed := time.Since(start)
		fmt.Printf("  [%s] %d/%d red values | %d candidates found | DONE\n",
			elapsed.Round(time.Second), wp.completed.Load(), total, wp.found.Load())
	}
	return firstErr
}

func (wp *WorkerPool) reportProgress(done chan struct{}, start time.Time, total int64) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			comp := wp.completed.Load()
			found := wp.found.Load()
			elapsed := time.Since(start)
			pct := float64(comp) / float64(total) * 100
			fmt.Printf("  [%s] %d/%d red values (%.1f%%) | %d candidates found\n",
				elapsed.Round(time.Second), comp, total, pct, found)
		}
	}
}

// drainAll opens a fresh handle on path, applies skip, and reads every
// remaining value into a slice so the caller can fan it out across
// workers.
func drainAll(cache *primitive.Cache, path string, skip int) ([]bracelet.Sequence, error) {
	h, err := cache.Open(path)
	if err != nil {
		return nil, err
	}
	defer h.Close()
	if skip > 0 {
		h.Skip(skip)
	}
	var out []bracelet.Sequence
	for {
		v := h.Next()
		if v == 0 {
			break
		}
		out = append(out, v)
	}
	return out, nil
}
