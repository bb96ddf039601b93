// Package mannwhitney computes the Mann-Whitney U auxiliary statistic the
// KS kernel attaches to every gene set: how unusual is the set of hit
// positions compared to the other positions in the ranked list. The rank
// and tie-correction math is adapted from the normal-approximation
// Mann-Whitney implementation used elsewhere in this corpus for comparing
// two numeric samples.
package mannwhitney

import (
	"math"
	"sort"
)

// Test returns the two-sided Mann-Whitney p-value comparing the rank
// positions in hitIndices against every other position in a list of
// length totalLen. A small p-value means the hits are not randomly
// distributed across the list -- they cluster toward one end.
func Test(hitIndices []int, totalLen int) float64 {
	if len(hitIndices) == 0 || len(hitIndices) >= totalLen {
		return 1.0
	}

	hit := make(map[int]bool, len(hitIndices))
	x := make([]float64, len(hitIndices))
	for i, h := range hitIndices {
		x[i] = float64(h)
		hit[h] = true
	}

	y := make([]float64, 0, totalLen-len(hitIndices))
	for i := 0; i < totalLen; i++ {
		if !hit[i] {
			y = append(y, float64(i))
		}
	}

	return twoSided(x, y)
}

// twoSided computes the Mann-Whitney rank test on samples x and y using the
// normal approximation, following scipy's method='asymptotic'.
func twoSided(x, y []float64) float64 {
	n1 := float64(len(x))
	n2 := float64(len(y))

	combined := make([]float64, 0, len(x)+len(y))
	combined = append(combined, x...)
	combined = append(combined, y...)

	ranked := rankValues(combined)
	rankX := ranked[:len(x)]

	sumRankX := 0.0
	for _, v := range rankX {
		sumRankX += v
	}

	u1 := n1*n2 + n1*(n1+1)/2.0 - sumRankX
	u2 := n1*n2 - u1

	t := tieCorrectionFactor(ranked)
	if t == 0 {
		return 1.0
	}

	sd := math.Sqrt(t * n1 * n2 * (n1 + n2 + 1) / 12.0)
	meanRank := n1*n2/2.0 + 0.5
	bigU := math.Max(u1, u2)
	z := (bigU - meanRank) / sd

	return 2 * normalSurvival(math.Abs(z))
}

// rankValues assigns fractional ranks to a, giving ties the mean of the
// ranks they would otherwise occupy.
func rankValues(a []float64) []float64 {
	ascending := argSort(a, false)
	descending := argSort(a, true)

	// Descending position i corresponds to ascending position n-1-i; for a
	// tie group spanning ascending positions [lo, hi], this and maxRank
	// below sum to lo+hi for every member of the group.
	minRank := make([]float64, len(a))
	for i, j := range descending {
		minRank[j] = float64(len(a) - 1 - i)
	}

	maxRank := make([]float64, len(a))
	for i, j := range ascending {
		maxRank[j] = float64(i)
	}

	out := make([]float64, len(a))
	for i := range out {
		out[i] = 1 + (minRank[i]+maxRank[i])/2.0
	}
	return out
}

// argSort returns the indices that would sort a; ties keep their relative
// (stable) order. When descending is true the comparison is reversed.
func argSort(a []float64, descending bool) []int {
	idx := make([]int, len(a))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		if descending {
			return a[idx[i]] > a[idx[j]]
		}
		return a[idx[i]] < a[idx[j]]
	})
	return idx
}

// tieCorrectionFactor applies the standard tie correction to the variance
// of the U statistic's normal approximation.
func tieCorrectionFactor(ranks []float64) float64 {
	sorted := append([]float64(nil), ranks...)
	sort.Float64s(sorted)

	n := len(sorted)
	if n < 2 {
		return 1.0
	}

	sum := 0.0
	for i := 0; i < n; {
		count := 1.0
		for i+1 < n && sorted[i] == sorted[i+1] {
			count++
			i++
		}
		sum += count*count*count - count
		i++
	}

	return 1.0 - sum/float64(n*n*n-n)
}

// normalSurvival returns P(Z > x) for a standard normal Z.
func normalSurvival(x float64) float64 {
	return (1 - math.Erf(x/math.Sqrt2)) / 2
}
