// Package enrichment assembles the real and permutation scores produced by
// the ks kernel and the perm drivers into the structures a caller actually
// wants back: one Result per gene set, and a Db bundling every set's
// Result with the configuration that produced it. Aggregation here is
// structural binding only -- no additional statistics are computed beyond
// what is already attached to the inputs.
package enrichment

import (
	"github.com/carbocation/gsea/dataset"
	"github.com/carbocation/gsea/geneset"
	"github.com/carbocation/gsea/ks"
	"github.com/carbocation/gsea/marker"
	"github.com/carbocation/gsea/metric"
	"github.com/carbocation/gsea/rankedlist"
	"github.com/carbocation/runningvariance"
)

// Result bundles the real enrichment score for one gene set with the
// vector of permutation ES values that form its null distribution, plus an
// online summary of that null distribution.
type Result struct {
	GeneSet *geneset.GeneSet

	// Real is the EnrichmentScoreCohort computed against the real
	// (unpermuted) ranked list.
	Real *ks.EnrichmentScoreCohort

	// RandomES holds one ES per permutation (gene-set shuffle or
	// template shuffle, never both), using the MaxDev variant.
	RandomES []float32

	// NullSummary is the online mean/variance of RandomES, threaded
	// through a runningvariance.RunningStat as permutations are
	// produced so it is available without re-scanning RandomES.
	NullSummary *runningvariance.RunningStat

	// LeadingEdge holds the leading-edge feature subset when Real was
	// computed in deep mode; nil otherwise.
	LeadingEdge []string
}

// NewResult binds a gene set's real score and null distribution into a
// Result. nullSummary may be nil if the caller did not thread online
// diagnostics.
func NewResult(gs *geneset.GeneSet, real *ks.EnrichmentScoreCohort, randomES []float32, nullSummary *runningvariance.RunningStat, leadingEdge []string) *Result {
	return &Result{
		GeneSet:     gs,
		Real:        real,
		RandomES:    randomES,
		NullSummary: nullSummary,
		LeadingEdge: leadingEdge,
	}
}

// Db is the full output of one ExecuteGsea invocation: the ranked list
// every set was scored against, the dataset/template that produced it (nil
// in pre-ranked mode), the metric configuration used (zero value in
// pre-ranked mode), and one Result per gene set.
type Db struct {
	RankedList *rankedlist.RankedList

	// DatasetTemplate is nil when the kernel was invoked in pre-ranked
	// mode (no dataset/template scoring took place).
	DatasetTemplate *dataset.DatasetTemplate

	Metric    metric.Metric
	Sort      metric.SortMode
	Order     metric.Order
	NumPerm   int
	ChipLabel string

	Results []*Result

	// Marker is nil unless template-shuffle permutation was run with
	// marker accumulation enabled.
	Marker *marker.PermutationTest
}
