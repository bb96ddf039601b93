package enrichment

import (
	"testing"

	"github.com/carbocation/gsea/geneset"
	"github.com/carbocation/gsea/ks"
	"github.com/carbocation/gsea/metric"
	"github.com/carbocation/gsea/rankedlist"
	"github.com/carbocation/runningvariance"
)

func TestNewDbResultFor(t *testing.T) {
	rl, err := rankedlist.New("rl", []string{"f1", "f2", "f3"}, []float32{3, 2, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gs := geneset.New("set-a", []string{"f1"})

	rv := runningvariance.NewRunningStat()
	rv.Push(0.1)
	rv.Push(-0.1)

	result := NewResult(gs, &ks.EnrichmentScoreCohort{}, []float32{0.1, -0.1}, rv, nil)
	db := NewDb(rl, nil, metric.Signal2Noise, metric.Real, metric.Descending, 2, "chip", []*Result{result})

	got := db.ResultFor("set-a")
	if got == nil {
		t.Fatalf("expected to find result for set-a")
	}
	if got.NullSummary.N != 2 {
		t.Fatalf("expected 2 accumulated null observations, got %d", got.NullSummary.N)
	}
	if db.ResultFor("nonexistent") != nil {
		t.Fatalf("expected nil for an unknown gene set")
	}
}
