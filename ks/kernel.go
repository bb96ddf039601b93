// Package ks implements the weighted Kolmogorov-Smirnov running-sum
// enrichment statistic: a single pass over a ranked list that scores every
// bound gene set at once.
package ks

import (
	"fmt"
	"math"

	"github.com/carbocation/gsea/geneset"
	"github.com/carbocation/gsea/kserr"
	"github.com/carbocation/gsea/mannwhitney"
	"github.com/carbocation/pfx"
)

// hitWeightFallback replaces a hit weight that comes back NaN/Inf from the
// cohort (belt-and-suspenders on top of the cohort's own Z_g fallback).
const hitWeightFallback = 1e-6

// Kernel computes the KS running-sum statistic. It is stateless and safe
// for concurrent use: all per-call state lives on the stack of Calculate.
type Kernel struct{}

// NewKernel returns a ready-to-use Kernel.
func NewKernel() *Kernel { return &Kernel{} }

// Calculate computes an EnrichmentScoreCohort for every gene set bound into
// coh, in a single pass over coh's ranked list. When storeDeep is false the
// profile and hit-index vectors are omitted to save memory, which matters
// for permutation scoring where only the ES scalar is needed.
func (k *Kernel) Calculate(coh *geneset.Cohort, storeDeep bool) ([]*EnrichmentScoreCohort, error) {
	if coh == nil {
		return nil, pfx.Err(fmt.Errorf("%w: cohort must not be nil", kserr.ErrInvalidArgument))
	}

	numSets := coh.NumGeneSets()
	rl := coh.RankedList()
	L := rl.Size()

	running := make([]float64, numSets)
	jump := make([]int, numSets)
	for i := range jump {
		jump[i] = -1
	}

	essMaxDev := make([]float32, numSets)
	rankAtMaxDev := make([]int, numSets)
	scoreAtMaxDev := make([]float32, numSets)

	essPos := make([]float32, numSets)
	rankAtPos := make([]int, numSets)
	scoreAtPos := make([]float32, numSets)

	essPosMaxDev := make([]float32, numSets)
	rankAtPosMaxDev := make([]int, numSets)
	scoreAtPosMaxDev := make([]float32, numSets)

	essNeg := make([]float32, numSets)
	rankAtNeg := make([]int, numSets)
	scoreAtNeg := make([]float32, numSets)

	essNegMaxDev := make([]float32, numSets)
	rankAtNegMaxDev := make([]int, numSets)
	scoreAtNegMaxDev := make([]float32, numSets)

	hitCount := make([]int, numSets)
	hitIndices := make([][]int, numSets)
	var profileAtHits [][]float32
	var fullProfile [][]float32
	if storeDeep {
		profileAtHits = make([][]float32, numSets)
		fullProfile = make([][]float32, numSets)
	}
	for g := 0; g < numSets; g++ {
		hitIndices[g] = make([]int, coh.NumTrue(g))
		if storeDeep {
			profileAtHits[g] = make([]float32, 0, coh.NumTrue(g))
			fullProfile[g] = make([]float32, L)
		}
	}

	allSets := make([]int, numSets)
	for i := range allSets {
		allSets[i] = i
	}

	for r := 0; r < L; r++ {
		name := rl.RankName(r)
		corr := rl.Score(r)
		isLastRun := r == L-1

		var touched []int
		if isLastRun {
			touched = allSets
		} else {
			touched = coh.GenesetIndicesForGene(name)
		}

		for _, g := range touched {
			gap := r - jump[g] - 1
			if gap > 0 {
				missW := coh.MissPoints(g)

				if storeDeep {
					trun := running[g]
					for j := jump[g] + 1; j < r; j++ {
						trun -= missW
						fullProfile[g][j] = float32(trun)
					}
				}

				running[g] -= float64(gap) * missW

				if math.Abs(float64(essMaxDev[g])) < math.Abs(running[g]) {
					essMaxDev[g] = float32(running[g])
					rankAtMaxDev[g] = r - 1
					scoreAtMaxDev[g] = rl.Score(r - 1)
				}
			}

			if isLastRun && !coh.IsMember(g, name) {
				running[g] -= coh.MissPoints(g)
			} else {
				jump[g] = r
				hit := coh.HitPoints(g, name)
				if math.IsNaN(hit) || math.IsInf(hit, 0) {
					hit = hitWeightFallback
				}
				running[g] += hit

				hitIndices[g][hitCount[g]] = r
				hitCount[g]++

				if storeDeep {
					profileAtHits[g] = append(profileAtHits[g], float32(running[g]))
				}
			}

			if storeDeep {
				fullProfile[g][r] = float32(running[g])
			}

			if math.Abs(float64(essMaxDev[g])) < math.Abs(running[g]) {
				essMaxDev[g] = float32(running[g])
				rankAtMaxDev[g] = r
				scoreAtMaxDev[g] = corr
			}

			if corr > 0 {
				if essPos[g] < float32(running[g]) {
					essPos[g] = float32(running[g])
					rankAtPos[g] = r
					scoreAtPos[g] = corr
				}
				if math.Abs(float64(essPosMaxDev[g])) < math.Abs(running[g]) {
					essPosMaxDev[g] = float32(running[g])
					rankAtPosMaxDev[g] = r
					scoreAtPosMaxDev[g] = corr
				}
			} else {
				if essNeg[g] > float32(running[g]) {
					essNeg[g] = float32(running[g])
					rankAtNeg[g] = r
					scoreAtNeg[g] = corr
				}
				if math.Abs(float64(essNegMaxDev[g])) < math.Abs(running[g]) {
					essNegMaxDev[g] = float32(running[g])
					rankAtNegMaxDev[g] = r
					scoreAtNegMaxDev[g] = corr
				}
			}
		}
	}

	out := make([]*EnrichmentScoreCohort, numSets)
	for g := 0; g < numSets; g++ {
		mw := mannwhitney.Test(hitIndices[g][:hitCount[g]], L)

		shared := &scoreCohort{
			rankedList:  rl,
			numHits:     coh.NumTrue(g),
			mannWhitney: mw,
			deep:        storeDeep,
		}
		if storeDeep {
			shared.hitIndices = hitIndices[g][:hitCount[g]]
			shared.profileAtHits = profileAtHits[g]
			shared.fullProfile = fullProfile[g]
		}

		out[g] = &EnrichmentScoreCohort{
			MaxDev:        &EnrichmentScore{es: essMaxDev[g], rankAtES: rankAtMaxDev[g], rankScoreAtES: scoreAtMaxDev[g], coh: shared},
			PosList:       &EnrichmentScore{es: essPos[g], rankAtES: rankAtPos[g], rankScoreAtES: scoreAtPos[g], coh: shared},
			PosListMaxDev: &EnrichmentScore{es: essPosMaxDev[g], rankAtES: rankAtPosMaxDev[g], rankScoreAtES: scoreAtPosMaxDev[g], coh: shared},
			NegList:       &EnrichmentScore{es: essNeg[g], rankAtES: rankAtNeg[g], rankScoreAtES: scoreAtNeg[g], coh: shared},
			NegListMaxDev: &EnrichmentScore{es: essNegMaxDev[g], rankAtES: rankAtNegMaxDev[g], rankScoreAtES: scoreAtNegMaxDev[g], coh: shared},
			NumHits:       coh.NumTrue(g),
			MannWhitney:   mw,
		}
	}

	return out, nil
}
