package perm

import (
	"context"
	"fmt"

	"github.com/carbocation/gsea/geneset"
	"github.com/carbocation/gsea/kserr"
	"github.com/carbocation/gsea/ks"
	"github.com/carbocation/gsea/randomize"
	"github.com/carbocation/pfx"
	"github.com/carbocation/runningvariance"
)

// GeneSetResult is the per-gene-set output of GeneSetShuffle: the real
// (deep) score, the random ES vector, and the online null summary.
type GeneSetResult struct {
	GeneSet     *geneset.GeneSet
	Real        *ks.EnrichmentScoreCohort
	RandomES    []float32
	NullSummary *runningvariance.RunningStat
}

// GeneSetShuffle scores coh for real in deep mode, then for each gene set g
// draws nperm random sets of size numTrue(g) from coh's ranked list
// universe, scoring each with storeDeep=false. Random sets are sampled
// independently per permutation index using d.Seeds.Sub(i), so results are
// reproducible and independent of worker scheduling.
func (d *Driver) GeneSetShuffle(ctx context.Context, coh *geneset.Cohort, nperm int) ([]*GeneSetResult, error) {
	if coh == nil {
		return nil, pfx.Err(fmt.Errorf("%w: cohort must not be nil", kserr.ErrInvalidArgument))
	}
	if nperm <= 0 {
		return nil, pfx.Err(fmt.Errorf("%w: nperm must be positive", kserr.ErrInvalidArgument))
	}

	numSets := coh.NumGeneSets()
	realScores, err := d.Kernel.Calculate(coh, true)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("scoring real cohort: %w", err))
	}

	nulls := newNullSets(numSets, nperm)
	rl := coh.RankedList()

	err = d.runIndexed(ctx, nperm, "geneset-shuffle", func(ctx context.Context, c int) error {
		rng := d.Seeds.Sub(c)

		randomSets := make([]*geneset.GeneSet, numSets)
		for g := 0; g < numSets; g++ {
			randomSets[g] = randomize.GeneSet(rng, rl, coh.NumTrue(g), fmt.Sprintf("%s-rnd-%d", coh.GeneSet(g).Name(), c))
		}

		rndCoh, err := coh.Clone(randomSets)
		if err != nil {
			return fmt.Errorf("permutation %d: %w", c, err)
		}

		rndScores, err := d.Kernel.Calculate(rndCoh, false)
		if err != nil {
			return fmt.Errorf("permutation %d: %w", c, err)
		}

		for g := 0; g < numSets; g++ {
			nulls[g].record(c, rndScores[g].MaxDev.ES())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]*GeneSetResult, numSets)
	for g := 0; g < numSets; g++ {
		out[g] = &GeneSetResult{
			GeneSet:     coh.GeneSet(g),
			Real:        realScores[g],
			RandomES:    nulls[g].es,
			NullSummary: nulls[g].summary,
		}
	}
	return out, nil
}
