package enrichment

import (
	"github.com/carbocation/gsea/dataset"
	"github.com/carbocation/gsea/metric"
	"github.com/carbocation/gsea/rankedlist"
)

// NewDb assembles a Db from a scored ranked list and the per-gene-set
// Results the permutation driver produced. dt is nil in pre-ranked mode.
func NewDb(rl *rankedlist.RankedList, dt *dataset.DatasetTemplate, m metric.Metric, sort metric.SortMode, order metric.Order, nperm int, chipLabel string, results []*Result) *Db {
	return &Db{
		RankedList:      rl,
		DatasetTemplate: dt,
		Metric:          m,
		Sort:            sort,
		Order:           order,
		NumPerm:         nperm,
		ChipLabel:       chipLabel,
		Results:         results,
	}
}

// ResultFor returns the Result for the named gene set, or nil if absent.
func (d *Db) ResultFor(name string) *Result {
	for _, r := range d.Results {
		if r.GeneSet.Name() == name {
			return r
		}
	}
	return nil
}
