// Package randomize draws the random structures the two permutation null
// models need: fixed-size random gene sets sampled from a ranked list's
// feature universe, and randomized class templates (balanced or
// unbalanced). Every draw takes an explicit *rand.Rand sub-stream so callers
// control determinism via the seed package rather than a process-wide RNG.
package randomize

import (
	"math/rand"
	"strconv"

	"github.com/carbocation/gsea/geneset"
	"github.com/carbocation/gsea/rankedlist"
)

// GeneSet draws a single random gene set of exactly size members sampled
// without replacement from rl's feature universe.
func GeneSet(rng *rand.Rand, rl *rankedlist.RankedList, size int, name string) *geneset.GeneSet {
	universe := rl.Names()
	perm := rng.Perm(len(universe))

	members := make([]string, size)
	for i := 0; i < size; i++ {
		members[i] = universe[perm[i]]
	}
	return geneset.New(name, members)
}

// GeneSets draws n independent random gene sets of the given size, named
// namePrefix-0 .. namePrefix-(n-1).
func GeneSets(rng *rand.Rand, rl *rankedlist.RankedList, size, n int, namePrefix string) []*geneset.GeneSet {
	out := make([]*geneset.GeneSet, n)
	for i := range out {
		out[i] = GeneSet(rng, rl, size, namePrefix+"-"+strconv.Itoa(i))
	}
	return out
}
