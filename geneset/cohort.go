package geneset

import (
	"fmt"
	"math"
	"sort"

	"github.com/carbocation/gsea/kserr"
	"github.com/carbocation/gsea/rankedlist"
	"github.com/carbocation/pfx"
)

// fallbackWeight is substituted whenever a hit weight would otherwise be
// zero, NaN, or infinite (a degenerate Z_g, or a single non-finite member
// score slipping through).
const fallbackWeight = 1e-6

// Generator builds a Cohort for a ranked list and a slice of gene sets. It
// is the seam the permutation drivers use to swap in random gene sets
// without re-deriving unrelated configuration (weighting exponent, etc.).
type Generator interface {
	CreateGeneSetCohort(rl *rankedlist.RankedList, gsets []*GeneSet, qualify bool) (*Cohort, error)
}

// DefaultGenerator is the Generator used throughout this kernel. Exponent is
// the metric weighting exponent p (hitPoints uses |score|^p); 1.0 matches
// the classic weighted KS statistic, 0.0 recovers the unweighted
// Kolmogorov-Smirnov statistic.
type DefaultGenerator struct {
	Exponent float64
}

// CreateGeneSetCohort implements Generator.
func (g DefaultGenerator) CreateGeneSetCohort(rl *rankedlist.RankedList, gsets []*GeneSet, qualify bool) (*Cohort, error) {
	return newCohort(rl, gsets, qualify, g.Exponent)
}

// Cohort is the immutable binding of one RankedList to K gene sets, with
// every per-set hit/miss weight and the feature->gene-set inverted index
// precomputed once so the KS kernel's single pass is O(L + sum(numTrue)).
//
// A Cohort borrows its RankedList and GeneSets; their lifetime must outlive
// the Cohort.
type Cohort struct {
	rankedList *rankedlist.RankedList
	geneSets   []*GeneSet
	exponent   float64

	numTrue    []int
	missPoints []float64
	hitPoints  []map[string]float64

	// inverted maps a feature name present in rankedList to the indices of
	// every gene set that counts it as a qualified member.
	inverted map[string][]int
}

func newCohort(rl *rankedlist.RankedList, gsets []*GeneSet, qualify bool, exponent float64) (*Cohort, error) {
	if rl == nil {
		return nil, pfx.Err(fmt.Errorf("%w: ranked list must not be nil", kserr.ErrInvalidArgument))
	}
	if len(gsets) == 0 {
		return nil, pfx.Err(fmt.Errorf("%w: at least one gene set is required", kserr.ErrInvalidArgument))
	}

	L := rl.Size()

	c := &Cohort{
		rankedList: rl,
		geneSets:   gsets,
		exponent:   exponent,
		numTrue:    make([]int, len(gsets)),
		missPoints: make([]float64, len(gsets)),
		hitPoints:  make([]map[string]float64, len(gsets)),
		inverted:   make(map[string][]int),
	}

	for gi, gs := range gsets {
		qualified, err := qualifiedMembers(gs, rl, qualify)
		if err != nil {
			return nil, err
		}
		if len(qualified) == 0 {
			return nil, pfx.Err(fmt.Errorf("%w: gene set %q has zero qualified members", kserr.ErrGeneSetDegenerate, gs.Name()))
		}

		// qualified comes from GeneSet.Members(), which ranges a Go map and
		// so returns its elements in randomized order. Sort by ranked-list
		// index before summing Z_g: floating-point addition is not
		// associative, and for non-integer member scores a randomized
		// summation order would make Z_g -- and hence the float32 ES --
		// vary run to run even with an identical seed.
		sort.Slice(qualified, func(i, j int) bool {
			ii, _ := rl.IndexOf(qualified[i])
			jj, _ := rl.IndexOf(qualified[j])
			return ii < jj
		})

		c.numTrue[gi] = len(qualified)
		if denom := L - len(qualified); denom > 0 {
			c.missPoints[gi] = 1.0 / float64(denom)
		} else {
			// A gene set qualifying every feature in the ranked list never
			// encounters a miss; missPoints is consequently never applied,
			// but left as 1/0 it would be +Inf and poison anything that
			// inspects it directly (logging, diagnostics).
			c.missPoints[gi] = 0
		}

		z := 0.0
		for _, m := range qualified {
			idx, _ := rl.IndexOf(m)
			z += math.Pow(math.Abs(float64(rl.Score(idx))), exponent)
		}

		weights := make(map[string]float64, len(qualified))
		degenerate := z == 0 || math.IsNaN(z) || math.IsInf(z, 0)
		for _, m := range qualified {
			if degenerate {
				weights[m] = fallbackWeight
			} else {
				idx, _ := rl.IndexOf(m)
				weights[m] = math.Pow(math.Abs(float64(rl.Score(idx))), exponent) / z
			}
			c.inverted[m] = append(c.inverted[m], gi)
		}
		c.hitPoints[gi] = weights
	}

	return c, nil
}

// qualifiedMembers returns gs's members restricted to names present in rl
// when qualify is true, or every member (even those absent from rl) when
// qualify is false -- in which case a caller relying on HitPoints/IsMember
// for an unqualified member will simply never see a hit for it.
func qualifiedMembers(gs *GeneSet, rl *rankedlist.RankedList, qualify bool) ([]string, error) {
	members := gs.Members()
	if !qualify {
		return members, nil
	}

	out := make([]string, 0, len(members))
	for _, m := range members {
		if _, ok := rl.IndexOf(m); ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// RankedList returns the ranked list this cohort is bound to.
func (c *Cohort) RankedList() *rankedlist.RankedList { return c.rankedList }

// NumGeneSets returns K, the number of gene sets bound into this cohort.
func (c *Cohort) NumGeneSets() int { return len(c.geneSets) }

// GeneSet returns the g-th bound gene set.
func (c *Cohort) GeneSet(g int) *GeneSet { return c.geneSets[g] }

// NumTrue returns the number of qualified members of gene set g.
func (c *Cohort) NumTrue(g int) int { return c.numTrue[g] }

// MissPoints returns the per-miss weight for gene set g: 1/(L - numTrue(g)),
// or 0 when every feature of the ranked list is a qualified member of g.
func (c *Cohort) MissPoints(g int) float64 { return c.missPoints[g] }

// HitPoints returns the weight added to gene set g's running score when
// name is encountered as a hit. It is only meaningful when IsMember(g,
// name) is true.
func (c *Cohort) HitPoints(g int, name string) float64 { return c.hitPoints[g][name] }

// IsMember reports whether name is a qualified member of gene set g.
func (c *Cohort) IsMember(g int, name string) bool {
	_, ok := c.hitPoints[g][name]
	return ok
}

// GenesetIndicesForGene returns the indices of every gene set that counts
// name as a qualified member, or nil if name belongs to none.
func (c *Cohort) GenesetIndicesForGene(name string) []int { return c.inverted[name] }

// Clone produces a new Cohort sharing this cohort's ranked list and
// weighting exponent but bound to newGeneSets instead. This amortizes the
// ranked-list bookkeeping when only the gene sets change, as in gene-set
// shuffling.
func (c *Cohort) Clone(newGeneSets []*GeneSet) (*Cohort, error) {
	return newCohort(c.rankedList, newGeneSets, true, c.exponent)
}
