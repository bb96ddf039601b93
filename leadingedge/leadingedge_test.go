package leadingedge

import (
	"testing"

	"github.com/carbocation/gsea/geneset"
	"github.com/carbocation/gsea/ks"
	"github.com/carbocation/gsea/rankedlist"
)

func mustCohort(t *testing.T, names []string, scores []float32, members []string) *geneset.Cohort {
	t.Helper()
	rl, err := rankedlist.New("t", names, scores)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gs := geneset.New("s", members)
	coh, err := geneset.DefaultGenerator{Exponent: 1}.CreateGeneSetCohort(rl, []*geneset.GeneSet{gs}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return coh
}

func TestSubsetPositiveESKeepsHitsAtOrBeforeRankAtES(t *testing.T) {
	coh := mustCohort(t,
		[]string{"f1", "f2", "f3", "f4", "f5", "f6", "f7", "f8", "f9", "f10"},
		[]float32{10, 9, 8, 7, 6, 5, 4, 3, 2, 1},
		[]string{"f1", "f2", "f3", "f9"},
	)

	cohorts, err := ks.NewKernel().Calculate(coh, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	subset, err := Subset(cohorts[0].MaxDev)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]bool{"f1": true, "f2": true, "f3": true}
	if len(subset) != len(want) {
		t.Fatalf("expected leading-edge subset %v, got %v", want, subset)
	}
	for _, name := range subset {
		if !want[name] {
			t.Fatalf("unexpected feature %q in leading-edge subset %v", name, subset)
		}
	}
}

func TestSubsetReturnsErrorWithoutDeepMode(t *testing.T) {
	coh := mustCohort(t,
		[]string{"f1", "f2", "f3"},
		[]float32{3, 2, 1},
		[]string{"f1"},
	)

	cohorts, err := ks.NewKernel().Calculate(coh, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := Subset(cohorts[0].MaxDev); err == nil {
		t.Fatalf("expected an error computing leading edge without deep mode")
	}
}
