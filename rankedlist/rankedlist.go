// Package rankedlist holds the ordered (feature, score) sequence that every
// other GSEA kernel component is ultimately scored against.
package rankedlist

import (
	"fmt"
	"math"

	"github.com/carbocation/gsea/kserr"
	"github.com/carbocation/pfx"
)

// RankedList is an immutable, ordered sequence of (name, score) pairs. Index
// 0 is understood by convention to be the most extreme entry at one end of
// the ranking; which end depends on how the caller sorted it (see the
// metric package's Order type), not on anything stored here.
type RankedList struct {
	name   string
	names  []string
	scores []float32
	index  map[string]int
}

// New builds a RankedList from parallel names/scores slices. Names must be
// unique and scores must be finite; otherwise New returns a wrapped
// kserr.ErrInvalidArgument.
func New(name string, names []string, scores []float32) (*RankedList, error) {
	if len(names) != len(scores) {
		return nil, pfx.Err(fmt.Errorf("%w: names and scores have different lengths (%d vs %d)", kserr.ErrInvalidArgument, len(names), len(scores)))
	}

	index := make(map[string]int, len(names))
	for i, n := range names {
		if _, seen := index[n]; seen {
			return nil, pfx.Err(fmt.Errorf("%w: duplicate feature name %q", kserr.ErrInvalidArgument, n))
		}
		s := scores[i]
		if math.IsNaN(float64(s)) || math.IsInf(float64(s), 0) {
			return nil, pfx.Err(fmt.Errorf("%w: non-finite score %v at rank %d (%q)", kserr.ErrInvalidArgument, s, i, n))
		}
		index[n] = i
	}

	return &RankedList{
		name:   name,
		names:  append([]string(nil), names...),
		scores: append([]float32(nil), scores...),
		index:  index,
	}, nil
}

// Name returns the list's label (typically derived from the dataset and
// template that produced it).
func (r *RankedList) Name() string { return r.name }

// Size returns the number of features, L.
func (r *RankedList) Size() int { return len(r.names) }

// RankName returns the feature name at rank i.
func (r *RankedList) RankName(i int) string { return r.names[i] }

// Score returns the score at rank i.
func (r *RankedList) Score(i int) float32 { return r.scores[i] }

// IndexOf returns the rank of the named feature, and whether it is present.
func (r *RankedList) IndexOf(name string) (int, bool) {
	i, ok := r.index[name]
	return i, ok
}

// Names returns the full feature universe in rank order. The returned slice
// must not be mutated by the caller.
func (r *RankedList) Names() []string { return r.names }
