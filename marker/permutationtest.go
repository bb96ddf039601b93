// Package marker accumulates per-feature scores across random templates
// produced during template-shuffle permutation, giving each feature a
// marker statistic (null mean/stddev) a caller can compare the real score
// against. This is a lightweight diagnostic, not a corrected p-value.
package marker

import (
	"fmt"
	"sync"

	"github.com/carbocation/gsea/dataset"
	"github.com/carbocation/gsea/kserr"
	"github.com/carbocation/gsea/rankedlist"
	"github.com/carbocation/pfx"
	"github.com/montanaflynn/stats"
)

// FeatureStat is the marker statistic for one feature: the mean and
// standard deviation of its score across every accumulated random
// template's ranked list.
type FeatureStat struct {
	Mean   float64
	StdDev float64
	N      int
}

// PermutationTest accumulates per-feature scores across random templates.
// AddRnd is called once per random ranked list produced during template
// shuffling; DoCalc finalizes the test exactly once. AddRnd is safe for
// concurrent use -- the permutation driver's worker goroutines call it
// directly whenever marker retention is enabled alongside Workers > 1.
type PermutationTest struct {
	mu     sync.Mutex
	scores map[string][]float64
	done   bool
	result map[string]FeatureStat
}

// NewPermutationTest returns an empty collaborator ready to accumulate
// random ranked lists.
func NewPermutationTest() *PermutationTest {
	return &PermutationTest{scores: make(map[string][]float64)}
}

// AddRnd records one random template's ranked list. The template argument
// is accepted for interface symmetry with the permutation driver's call
// site but is not itself consulted -- only the scores the random template
// produced matter to the marker statistic.
func (p *PermutationTest) AddRnd(_ *dataset.Template, rl *rankedlist.RankedList) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done {
		return pfx.Err(fmt.Errorf("%w: AddRnd called after DoCalc finalized the test", kserr.ErrInvalidArgument))
	}
	for i := 0; i < rl.Size(); i++ {
		name := rl.RankName(i)
		p.scores[name] = append(p.scores[name], float64(rl.Score(i)))
	}
	return nil
}

// DoCalc finalizes the test, computing each feature's mean and standard
// deviation across every accumulated random template. It must be called
// exactly once; subsequent AddRnd calls return an error.
func (p *PermutationTest) DoCalc() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done {
		return pfx.Err(fmt.Errorf("%w: DoCalc already called", kserr.ErrInvalidArgument))
	}
	p.done = true

	p.result = make(map[string]FeatureStat, len(p.scores))
	for name, vals := range p.scores {
		data := stats.LoadRawData(vals)

		mean, err := data.Mean()
		if err != nil {
			return pfx.Err(fmt.Errorf("computing marker mean for %q: %w", name, err))
		}
		sd, err := data.StandardDeviation()
		if err != nil {
			return pfx.Err(fmt.Errorf("computing marker stddev for %q: %w", name, err))
		}
		p.result[name] = FeatureStat{Mean: mean, StdDev: sd, N: len(vals)}
	}
	return nil
}

// Stat returns the finalized marker statistic for name. Returns
// kserr.ErrInvalidArgument if DoCalc has not yet run or name was never
// observed.
func (p *PermutationTest) Stat(name string) (FeatureStat, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.done {
		return FeatureStat{}, pfx.Err(fmt.Errorf("%w: DoCalc has not been called", kserr.ErrInvalidArgument))
	}
	s, ok := p.result[name]
	if !ok {
		return FeatureStat{}, pfx.Err(fmt.Errorf("%w: no marker statistic accumulated for %q", kserr.ErrInvalidArgument, name))
	}
	return s, nil
}
