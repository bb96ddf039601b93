// Package perm drives the two permutation null models: gene-set shuffling
// and template shuffling. Each permutation's scoring and kernel invocation
// is independent, so both drivers fan out across a worker pool sized by an
// explicit concurrency knob: a fixed number of goroutines drain a buffered
// channel of permutation indices and a WaitGroup waits for them, the
// worker pattern used elsewhere in this corpus for independent per-item
// work.
package perm

import (
	"context"
	"fmt"
	"sync"

	"github.com/carbocation/gsea/geneset"
	"github.com/carbocation/gsea/kserr"
	"github.com/carbocation/gsea/ks"
	"github.com/carbocation/gsea/seed"
	"github.com/carbocation/pfx"
	"github.com/carbocation/runningvariance"
)

// LogFrequency is how often (in permutation count) progress is reported.
const LogFrequency = 5

// ProgressFunc receives a one-line progress update. A nil ProgressFunc is
// treated as a no-op sink.
type ProgressFunc func(iter, total int, label string)

func report(fn ProgressFunc, iter, total int, label string) {
	if fn == nil {
		return
	}
	if iter%LogFrequency == 0 || iter == total {
		fn(iter, total, label)
	}
}

// Driver coordinates permutation scoring. Kernel and Seeds are required;
// Progress and Workers are optional (Workers <= 0 means 1).
type Driver struct {
	Kernel   *ks.Kernel
	Seeds    *seed.Generator
	Progress ProgressFunc
	Workers  int
}

func (d *Driver) workers() int {
	if d.Workers <= 0 {
		return 1
	}
	return d.Workers
}

// nullSet is the per-gene-set accumulator a permutation driver fills while
// iterating permutation indices: the raw ES vector plus an online
// mean/variance summary fed one push at a time.
type nullSet struct {
	mu      sync.Mutex
	es      []float32
	summary *runningvariance.RunningStat
}

func newNullSets(n int, nperm int) []*nullSet {
	out := make([]*nullSet, n)
	for i := range out {
		out[i] = &nullSet{
			es:      make([]float32, nperm),
			summary: runningvariance.NewRunningStat(),
		}
	}
	return out
}

func (n *nullSet) record(c int, es float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.es[c] = es
	n.summary.Push(float64(es))
}

// runIndexed runs work(ctx, i) for every i in [0, nperm) across d.workers()
// goroutines, pulling indices from a shared channel so results land
// independent of completion order; each worker's RNG sub-stream is derived
// solely from (seeds, i), never from scheduling order. If any work call
// fails, the run returns the first error (wrapped) and no result; workers
// still process the remaining indices before runIndexed returns. A
// cancelled ctx stops each worker before its next index.
func (d *Driver) runIndexed(ctx context.Context, nperm int, label string, work func(ctx context.Context, i int) error) error {
	indices := make(chan int, nperm)
	for i := 0; i < nperm; i++ {
		indices <- i
	}
	close(indices)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		done     int
	)

	worker := func() {
		defer wg.Done()
		for i := range indices {
			select {
			case <-ctx.Done():
				mu.Lock()
				if firstErr == nil {
					firstErr = ctx.Err()
				}
				mu.Unlock()
				return
			default:
			}

			if err := work(ctx, i); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				continue
			}

			mu.Lock()
			done++
			n := done
			mu.Unlock()
			report(d.Progress, n, nperm, label)
		}
	}

	wg.Add(d.workers())
	for i := 0; i < d.workers(); i++ {
		go worker()
	}
	wg.Wait()

	if firstErr != nil {
		return pfx.Err(fmt.Errorf("permutation run %q: %w", label, firstErr))
	}
	return nil
}

// validateGeneSets checks only that at least one gene set was supplied.
// Sets with zero qualified members are rejected later, when the cohort is
// built against a ranked list.
func validateGeneSets(gsets []*geneset.GeneSet) error {
	if len(gsets) == 0 {
		return pfx.Err(fmt.Errorf("%w: no gene sets supplied", kserr.ErrInvalidArgument))
	}
	return nil
}
