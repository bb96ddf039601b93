// Package gsea ties together the ranked-list, gene-set, kernel, metric,
// randomize, and perm packages into the two entry points a caller actually
// invokes: score a dataset+template against a gene-set collection under
// template shuffling, or score an already-ranked list under gene-set
// shuffling.
package gsea

import (
	"context"
	"fmt"

	"github.com/carbocation/gsea/dataset"
	"github.com/carbocation/gsea/enrichment"
	"github.com/carbocation/gsea/geneset"
	"github.com/carbocation/gsea/kserr"
	"github.com/carbocation/gsea/ks"
	"github.com/carbocation/gsea/leadingedge"
	"github.com/carbocation/gsea/marker"
	"github.com/carbocation/gsea/metric"
	"github.com/carbocation/gsea/perm"
	"github.com/carbocation/gsea/randomize"
	"github.com/carbocation/gsea/rankedlist"
	"github.com/carbocation/gsea/seed"
	"github.com/carbocation/pfx"
)

// ExecuteGseaParams configures the template-shuffle entry point.
type ExecuteGseaParams struct {
	Metric       metric.Metric
	Sort         metric.SortMode
	Order        metric.Order
	MetricParams metric.Params

	Seeds      *seed.Generator
	Randomizer randomize.TemplateRandomizerType
	CohortGen  geneset.Generator

	NumWorkers int
	Progress   perm.ProgressFunc

	// NumMarkers, when > 0, enables marker accumulation: every random
	// ranked list produced during permutation is fed to a
	// marker.PermutationTest, finalized before ExecuteGsea returns.
	NumMarkers int
}

// ExecuteGsea scores dt against gsets under template-shuffle permutation:
// the real ranked list is computed once via metric.ScoreDataset, then
// nperm random templates are drawn and re-scored to build the null
// distribution for every gene set.
func ExecuteGsea(ctx context.Context, dt *dataset.DatasetTemplate, gsets []*geneset.GeneSet, nperm int, params ExecuteGseaParams) (*enrichment.Db, error) {
	if params.Seeds == nil {
		return nil, pfx.Err(fmt.Errorf("%w: a seed generator is required", kserr.ErrInvalidArgument))
	}
	if params.CohortGen == nil {
		params.CohortGen = geneset.DefaultGenerator{Exponent: 1.0}
	}

	driver := &perm.Driver{
		Kernel:   ks.NewKernel(),
		Seeds:    params.Seeds,
		Progress: params.Progress,
		Workers:  params.NumWorkers,
	}

	var markerTest *marker.PermutationTest
	if params.NumMarkers > 0 {
		markerTest = marker.NewPermutationTest()
	}

	shuffleParams := perm.TemplateShuffleParams{
		Metric:          params.Metric,
		Sort:            params.Sort,
		Order:           params.Order,
		MetricParams:    params.MetricParams,
		Randomizer:      params.Randomizer,
		CohortGen:       params.CohortGen,
		RetainForMarker: markerTest,
	}

	results, realRL, err := driver.TemplateShuffle(ctx, dt, gsets, nperm, shuffleParams)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("executing template-shuffle GSEA: %w", err))
	}

	if markerTest != nil {
		if err := markerTest.DoCalc(); err != nil {
			return nil, pfx.Err(fmt.Errorf("finalizing marker statistics: %w", err))
		}
	}

	db := buildDb(realRL, dt, params.Metric, params.Sort, params.Order, nperm, "", results, markerTest)
	return db, nil
}

// ExecuteGseaPreranked scores an already-ranked list (the caller has done
// its own metric computation, or has a pre-ranked GMT-derived list) against
// gsets under gene-set shuffling: random fixed-size gene sets are drawn
// from rl's own feature universe, never from an external template.
func ExecuteGseaPreranked(ctx context.Context, rl *rankedlist.RankedList, gsets []*geneset.GeneSet, nperm int, seeds *seed.Generator, chip string, cohortGen geneset.Generator) (*enrichment.Db, error) {
	if seeds == nil {
		return nil, pfx.Err(fmt.Errorf("%w: a seed generator is required", kserr.ErrInvalidArgument))
	}
	if cohortGen == nil {
		cohortGen = geneset.DefaultGenerator{Exponent: 1.0}
	}

	coh, err := cohortGen.CreateGeneSetCohort(rl, gsets, true)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("building pre-ranked cohort: %w", err))
	}

	driver := &perm.Driver{Kernel: ks.NewKernel(), Seeds: seeds}
	results, err := driver.GeneSetShuffle(ctx, coh, nperm)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("executing gene-set-shuffle GSEA: %w", err))
	}

	return buildDb(rl, nil, 0, 0, 0, nperm, chip, results, nil), nil
}

// buildDb folds a perm driver's []*perm.GeneSetResult into the
// enrichment.Result slice an EnrichmentDb carries.
func buildDb(rl *rankedlist.RankedList, dt *dataset.DatasetTemplate, m metric.Metric, sortMode metric.SortMode, order metric.Order, nperm int, chip string, results []*perm.GeneSetResult, markerTest *marker.PermutationTest) *enrichment.Db {
	enrichResults := make([]*enrichment.Result, len(results))
	for i, r := range results {
		var edge []string
		if r.Real.MaxDev.IsDeep() {
			if subset, err := leadingedge.Subset(r.Real.MaxDev); err == nil {
				edge = subset
			}
		}
		enrichResults[i] = enrichment.NewResult(r.GeneSet, r.Real, r.RandomES, r.NullSummary, edge)
	}

	db := enrichment.NewDb(rl, dt, m, sortMode, order, nperm, chip, enrichResults)
	db.Marker = markerTest
	return db
}
