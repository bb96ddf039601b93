package geneset

import (
	"math"
	"testing"

	"github.com/carbocation/gsea/rankedlist"
)

func mustRL(t *testing.T, names []string, scores []float32) *rankedlist.RankedList {
	t.Helper()
	rl, err := rankedlist.New("t", names, scores)
	if err != nil {
		t.Fatalf("unexpected error building ranked list: %v", err)
	}
	return rl
}

func TestCohortWeightNormalization(t *testing.T) {
	rl := mustRL(t, []string{"a", "b", "c", "d", "e"}, []float32{10, 8, 3, -2, -9})
	gs := New("s", []string{"a", "c", "e"})

	coh, err := DefaultGenerator{Exponent: 1}.CreateGeneSetCohort(rl, []*GeneSet{gs}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum := 0.0
	for _, m := range gs.Members() {
		sum += coh.HitPoints(0, m)
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("expected hit weights to sum to 1, got %v", sum)
	}
}

func TestCohortMissWeightIdentity(t *testing.T) {
	rl := mustRL(t, []string{"a", "b", "c", "d", "e"}, []float32{10, 8, 3, -2, -9})
	gs := New("s", []string{"a", "c"})

	coh, err := DefaultGenerator{Exponent: 1}.CreateGeneSetCohort(rl, []*GeneSet{gs}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	product := coh.MissPoints(0) * float64(rl.Size()-coh.NumTrue(0))
	if math.Abs(product-1.0) > 1e-9 {
		t.Fatalf("expected missPoints*(L-numTrue) == 1, got %v", product)
	}
}

func TestCohortDegenerateScoresFallBackToEpsilon(t *testing.T) {
	rl := mustRL(t, []string{"a", "b", "c"}, []float32{0, 0, 0})
	gs := New("s", []string{"a", "b"})

	coh, err := DefaultGenerator{Exponent: 1}.CreateGeneSetCohort(rl, []*GeneSet{gs}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, m := range gs.Members() {
		if coh.HitPoints(0, m) != fallbackWeight {
			t.Fatalf("expected fallback weight %v for %q, got %v", fallbackWeight, m, coh.HitPoints(0, m))
		}
	}
}

func TestCohortRejectsDegenerateGeneSet(t *testing.T) {
	rl := mustRL(t, []string{"a", "b", "c"}, []float32{1, 2, 3})
	gs := New("s", []string{"z"})

	if _, err := (DefaultGenerator{Exponent: 1}).CreateGeneSetCohort(rl, []*GeneSet{gs}, true); err == nil {
		t.Fatalf("expected an error for a gene set with zero qualified members")
	}
}

func TestCohortInvertedIndex(t *testing.T) {
	rl := mustRL(t, []string{"a", "b", "c"}, []float32{3, 2, 1})
	s1 := New("s1", []string{"a", "b"})
	s2 := New("s2", []string{"b", "c"})

	coh, err := DefaultGenerator{Exponent: 1}.CreateGeneSetCohort(rl, []*GeneSet{s1, s2}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := coh.GenesetIndicesForGene("a"); len(got) != 1 || got[0] != 0 {
		t.Fatalf("expected 'a' to map to [0], got %v", got)
	}
	if got := coh.GenesetIndicesForGene("b"); len(got) != 2 {
		t.Fatalf("expected 'b' to map to both sets, got %v", got)
	}
	if got := coh.GenesetIndicesForGene("missing"); got != nil {
		t.Fatalf("expected nil for an unreferenced feature, got %v", got)
	}
}

func TestCohortZWeightsAreDeterministicRegardlessOfMapOrder(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	scores := []float32{11.3, -4.7, 8.1, 2.9, -0.6, 5.5, -9.2, 1.1}
	rl := mustRL(t, names, scores)
	gs := New("s", names)

	var want float64
	for i := 0; i < 20; i++ {
		// GeneSet.Members() ranges a Go map, so each CreateGeneSetCohort
		// call below walks qualified members in a freshly randomized
		// order. If Z_g summation were order-dependent, these hit weights
		// would drift across iterations for these non-integer scores.
		coh, err := DefaultGenerator{Exponent: 1}.CreateGeneSetCohort(rl, []*GeneSet{gs}, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := coh.HitPoints(0, "a")
		if i == 0 {
			want = got
			continue
		}
		if got != want {
			t.Fatalf("iteration %d: hit weight for %q drifted: got %v, want %v", i, "a", got, want)
		}
	}
}

func TestCohortMissPointsGuardsAgainstAllMembersQualifying(t *testing.T) {
	rl := mustRL(t, []string{"a", "b", "c"}, []float32{3, 2, 1})
	gs := New("s", []string{"a", "b", "c"})

	coh, err := DefaultGenerator{Exponent: 1}.CreateGeneSetCohort(rl, []*GeneSet{gs}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if mp := coh.MissPoints(0); math.IsInf(mp, 0) || mp != 0 {
		t.Fatalf("expected missPoints to be 0 (not +Inf) when every feature qualifies, got %v", mp)
	}
}

func TestCohortClonePreservesExponent(t *testing.T) {
	rl := mustRL(t, []string{"a", "b", "c", "d"}, []float32{4, 3, 2, 1})
	gs := New("s", []string{"a", "b"})

	coh, err := DefaultGenerator{Exponent: 2}.CreateGeneSetCohort(rl, []*GeneSet{gs}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rnd := New("rnd", []string{"c", "d"})
	clone, err := coh.Clone([]*GeneSet{rnd})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if clone.RankedList() != rl {
		t.Fatalf("expected clone to share the ranked list")
	}
	if clone.exponent != 2 {
		t.Fatalf("expected clone to preserve the weighting exponent")
	}
}
