package perm

import (
	"context"
	"fmt"

	"github.com/carbocation/gsea/dataset"
	"github.com/carbocation/gsea/geneset"
	"github.com/carbocation/gsea/kserr"
	"github.com/carbocation/gsea/marker"
	"github.com/carbocation/gsea/metric"
	"github.com/carbocation/gsea/randomize"
	"github.com/carbocation/gsea/rankedlist"
	"github.com/carbocation/pfx"
)

// TemplateShuffleParams configures TemplateShuffle.
type TemplateShuffleParams struct {
	Metric       metric.Metric
	Sort         metric.SortMode
	Order        metric.Order
	MetricParams metric.Params
	Randomizer   randomize.TemplateRandomizerType
	CohortGen    geneset.Generator

	// RetainForMarker, when non-nil, receives every random ranked list
	// via AddRnd as permutations are produced. Callers must call
	// Marker.DoCalc() themselves exactly once after TemplateShuffle
	// returns; the driver never finalizes it, since a caller may want to
	// combine accumulation across several calls first.
	RetainForMarker *marker.PermutationTest
}

// TemplateShuffle computes the real ranked list and EnrichmentScoreCohort
// for dt's dataset/template pair under params.Metric, then draws nperm
// random templates via params.Randomizer, re-scoring the dataset under
// each to build a random ranked list and cohort, recording per-set ES into
// the null distribution. Random templates never mix with gene-set
// shuffling: gsets must already be the real gene sets.
func (d *Driver) TemplateShuffle(ctx context.Context, dt *dataset.DatasetTemplate, gsets []*geneset.GeneSet, nperm int, params TemplateShuffleParams) ([]*GeneSetResult, *rankedlist.RankedList, error) {
	if dt == nil {
		return nil, nil, pfx.Err(fmt.Errorf("%w: dataset/template must not be nil", kserr.ErrInvalidArgument))
	}
	if err := validateGeneSets(gsets); err != nil {
		return nil, nil, err
	}
	if nperm <= 0 {
		return nil, nil, pfx.Err(fmt.Errorf("%w: nperm must be positive", kserr.ErrInvalidArgument))
	}
	if params.CohortGen == nil {
		params.CohortGen = geneset.DefaultGenerator{Exponent: 1.0}
	}

	realRL, err := metric.ScoreDataset(params.Metric, params.Sort, params.Order, params.MetricParams, dt)
	if err != nil {
		return nil, nil, pfx.Err(fmt.Errorf("scoring real ranked list: %w", err))
	}

	realCoh, err := params.CohortGen.CreateGeneSetCohort(realRL, gsets, true)
	if err != nil {
		return nil, nil, pfx.Err(fmt.Errorf("building real cohort: %w", err))
	}

	numSets := realCoh.NumGeneSets()
	realScores, err := d.Kernel.Calculate(realCoh, true)
	if err != nil {
		return nil, nil, pfx.Err(fmt.Errorf("scoring real cohort: %w", err))
	}

	nulls := newNullSets(numSets, nperm)

	err = d.runIndexed(ctx, nperm, "template-shuffle", func(ctx context.Context, c int) error {
		rng := d.Seeds.Sub(c)
		rndTemplate := randomize.Template(rng, dt.Template, params.Randomizer)

		rndDT, err := dataset.NewDatasetTemplate(dt.Dataset, rndTemplate)
		if err != nil {
			return fmt.Errorf("permutation %d: %w", c, err)
		}

		rndRL, err := metric.ScoreDataset(params.Metric, params.Sort, params.Order, params.MetricParams, rndDT)
		if err != nil {
			return fmt.Errorf("permutation %d: %w", c, err)
		}

		rndCoh, err := params.CohortGen.CreateGeneSetCohort(rndRL, gsets, true)
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

		if params.RetainForMarker != nil {
			if err := params.RetainForMarker.AddRnd(rndTemplate, rndRL); err != nil {
				return fmt.Errorf("permutation %d: %w", c, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	out := make([]*GeneSetResult, numSets)
	for g := 0; g < numSets; g++ {
		out[g] = &GeneSetResult{
			GeneSet:     realCoh.GeneSet(g),
			Real:        realScores[g],
			RandomES:    nulls[g].es,
			NullSummary: nulls[g].summary,
		}
	}
	return out, realRL, nil
}
