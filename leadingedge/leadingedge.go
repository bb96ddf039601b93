// Package leadingedge computes the leading-edge subset of a scored gene
// set: the qualified hits that actually drove the enrichment signal,
// i.e. those occurring on the ES side of rankAtES. Reporting, plotting, and
// zipping the subset (as the original tool's LeadingEdgeTool does) are out
// of scope; this package is pure data derived from an already-scored deep
// EnrichmentScore.
package leadingedge

import "github.com/carbocation/gsea/ks"

// Subset returns the feature names of es's qualified hits that lie on the
// enrichment-driving side of rankAtES: at or before it for a positive ES,
// at or after it for a negative ES. Returns kserr.ErrDeepNotAvailable (via
// es.HitIndices) if es was not computed in deep mode.
func Subset(es *ks.EnrichmentScore) ([]string, error) {
	hits, err := es.HitIndices()
	if err != nil {
		return nil, err
	}

	rl := es.RankedList()
	rankAtES := es.RankAtES()
	positive := es.ES() >= 0

	out := make([]string, 0, len(hits))
	for _, h := range hits {
		if positive && h <= rankAtES {
			out = append(out, rl.RankName(h))
		} else if !positive && h >= rankAtES {
			out = append(out, rl.RankName(h))
		}
	}
	return out, nil
}
