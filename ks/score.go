package ks

import (
	"github.com/carbocation/gsea/kserr"
	"github.com/carbocation/gsea/rankedlist"
)

// scoreCohort is the single owned record shared by pointer among the five
// EnrichmentScore views of one gene set, so the deep profile/hit-index
// vectors are never copied.
type scoreCohort struct {
	rankedList  *rankedlist.RankedList
	numHits     int
	mannWhitney float64
	deep        bool

	hitIndices    []int
	profileAtHits []float32
	fullProfile   []float32
}

// EnrichmentScore is one (ES, rankAtES, rankScoreAtES) view into a
// scoreCohort. Several EnrichmentScore values -- one per ES variant -- share
// the same underlying cohort.
type EnrichmentScore struct {
	es            float32
	rankAtES      int
	rankScoreAtES float32
	coh           *scoreCohort
}

// ES returns the signed maximum-deviation value for this view.
func (e *EnrichmentScore) ES() float32 { return e.es }

// RankAtES returns the ranked-list index at which ES was attained.
func (e *EnrichmentScore) RankAtES() int { return e.rankAtES }

// RankScoreAtES returns the ranked-list score at RankAtES.
func (e *EnrichmentScore) RankScoreAtES() float32 { return e.rankScoreAtES }

// NumHits returns the number of qualified hits for the underlying gene set.
func (e *EnrichmentScore) NumHits() int { return e.coh.numHits }

// MannWhitney returns the Mann-Whitney auxiliary statistic for the
// underlying gene set's hit positions.
func (e *EnrichmentScore) MannWhitney() float64 { return e.coh.mannWhitney }

// IsDeep reports whether this score was computed with storeDeep=true.
func (e *EnrichmentScore) IsDeep() bool { return e.coh.deep }

// RankedList returns the ranked list this score was computed against, so
// callers holding only an EnrichmentScore (e.g. leadingedge.Subset) can
// resolve hit indices back to feature names.
func (e *EnrichmentScore) RankedList() *rankedlist.RankedList { return e.coh.rankedList }

// HitIndices returns the ranked-list indices at which hits occurred, in
// rank order. Returns kserr.ErrDeepNotAvailable if storeDeep was false.
func (e *EnrichmentScore) HitIndices() ([]int, error) {
	if !e.coh.deep {
		return nil, kserr.ErrDeepNotAvailable
	}
	return e.coh.hitIndices, nil
}

// Profile returns the running score recorded at each hit, in rank order.
// Returns kserr.ErrDeepNotAvailable if storeDeep was false.
func (e *EnrichmentScore) Profile() ([]float32, error) {
	if !e.coh.deep {
		return nil, kserr.ErrDeepNotAvailable
	}
	return e.coh.profileAtHits, nil
}

// FullProfile returns the running score recorded at every ranked-list
// index. Returns kserr.ErrDeepNotAvailable if storeDeep was false.
func (e *EnrichmentScore) FullProfile() ([]float32, error) {
	if !e.coh.deep {
		return nil, kserr.ErrDeepNotAvailable
	}
	return e.coh.fullProfile, nil
}

// EnrichmentScoreCohort bundles the five ES variants the kernel computes in
// one pass for a single gene set, plus the auxiliary statistics that do not
// depend on which variant is of interest.
type EnrichmentScoreCohort struct {
	// MaxDev is the classic signed maximum-deviation enrichment score.
	MaxDev *EnrichmentScore

	// PosList is the maximum signed running score while restricted to
	// positions with a positive ranked-list score.
	PosList *EnrichmentScore

	// PosListMaxDev is the maximum-|deviation| running score over the same
	// positive-score region.
	PosListMaxDev *EnrichmentScore

	// NegList is the minimum (most negative) signed running score while
	// restricted to positions with a non-positive ranked-list score.
	NegList *EnrichmentScore

	// NegListMaxDev is the maximum-|deviation| running score over the same
	// negative-score region.
	NegListMaxDev *EnrichmentScore

	// NumHits is the number of qualified hits for this gene set.
	NumHits int

	// MannWhitney is the Mann-Whitney auxiliary statistic on this gene
	// set's hit positions.
	MannWhitney float64
}
