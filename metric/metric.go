// Package metric turns a dataset and its class template into a ranked list
// by scoring every feature (row) with one of the classic GSEA metrics.
package metric

import (
	"fmt"
	"math"
	"sort"

	"github.com/carbocation/gsea/dataset"
	"github.com/carbocation/gsea/kserr"
	"github.com/carbocation/gsea/rankedlist"
	"github.com/carbocation/pfx"
	"gonum.org/v1/gonum/stat"
)

// Metric selects the per-feature scoring function.
type Metric int

const (
	// Signal2Noise scores (mean_A - mean_B) / (std_A + std_B).
	Signal2Noise Metric = iota
	// TTest scores (mean_A - mean_B) / sqrt(var_A/n_A + var_B/n_B).
	TTest
	// Ratio scores mean_A / mean_B.
	Ratio
	// LogRatio scores log2(mean_A / mean_B).
	LogRatio
	// Diff scores mean_A - mean_B.
	Diff
	// Pearson scores the Pearson correlation of the row against a
	// continuous template.
	Pearson
)

func (m Metric) String() string {
	switch m {
	case Signal2Noise:
		return "Signal2Noise"
	case TTest:
		return "TTest"
	case Ratio:
		return "Ratio"
	case LogRatio:
		return "LogRatio"
	case Diff:
		return "Diff"
	case Pearson:
		return "Pearson"
	default:
		return "Unknown"
	}
}

// SortMode selects whether the output list is sorted by score.
type SortMode int

const (
	// Real sorts features by their computed score.
	Real SortMode = iota
	// Preranked assumes the caller's row order is already the desired
	// order and skips sorting.
	Preranked
)

// Order selects ascending or descending score order when SortMode is Real.
type Order int

const (
	// Descending places the most positive score at rank 0.
	Descending Order = iota
	// Ascending places the most negative score at rank 0.
	Ascending
)

// Params configures metric scoring. FixLow is the floor substituted for a
// degenerate or non-finite per-class statistic (e.g. a class standard
// deviation of zero), mirroring the original tool's "fix low" protection
// against division blow-up.
type Params struct {
	FixLow float64
}

// DefaultParams returns the conventional FixLow floor used throughout the
// original tool's metric implementations.
func DefaultParams() Params {
	return Params{FixLow: 0.2}
}

// ScoreDataset scores every row of dt.Dataset with m against dt.Template,
// producing a RankedList of length dt.Dataset.NumRows(). Signal2Noise,
// TTest, Ratio, LogRatio, and Diff require a categorical template; Pearson
// requires a continuous one.
func ScoreDataset(m Metric, sort_ SortMode, order Order, params Params, dt *dataset.DatasetTemplate) (*rankedlist.RankedList, error) {
	if dt == nil || dt.Dataset == nil || dt.Template == nil {
		return nil, pfx.Err(fmt.Errorf("%w: dataset/template must not be nil", kserr.ErrInvalidArgument))
	}

	ds := dt.Dataset
	tmpl := dt.Template

	if m == Pearson && !tmpl.IsContinuous() {
		return nil, pfx.Err(fmt.Errorf("%w: Pearson requires a continuous template", kserr.ErrInvalidArgument))
	}
	if m != Pearson && tmpl.IsContinuous() {
		return nil, pfx.Err(fmt.Errorf("%w: %s requires a categorical template", kserr.ErrInvalidArgument, m))
	}

	scores := make([]float32, ds.NumRows())
	for i := 0; i < ds.NumRows(); i++ {
		s, err := scoreRow(m, ds.Row(i), tmpl, params)
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("scoring row %q: %w", ds.RowName(i), err))
		}
		scores[i] = s
	}

	names := append([]string(nil), ds.RowNames()...)
	if sort_ == Real {
		sortByScore(names, scores, order)
	}

	rl, err := rankedlist.New(fmt.Sprintf("%s:%s:%s", ds.Name(), tmpl.Name(), m), names, scores)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("building ranked list for metric %s: %w", m, err))
	}
	return rl, nil
}

func scoreRow(m Metric, row []float64, tmpl *dataset.Template, params Params) (float32, error) {
	if m == Pearson {
		phenotype := make([]float64, tmpl.NumSamples())
		for j := range phenotype {
			phenotype[j] = tmpl.Phenotype(j)
		}
		corr := stat.Correlation(row, phenotype, nil)
		return fixFinite(corr, params), nil
	}

	a, b := splitByClass(row, tmpl)
	meanA, stdA := stat.MeanStdDev(a, nil)
	meanB, stdB := stat.MeanStdDev(b, nil)

	switch m {
	case Signal2Noise:
		stdA = fixLowMagnitude(stdA, params.FixLow)
		stdB = fixLowMagnitude(stdB, params.FixLow)
		return fixFinite((meanA-meanB)/(stdA+stdB), params), nil
	case TTest:
		nA, nB := float64(len(a)), float64(len(b))
		varA, varB := stdA*stdA, stdB*stdB
		denom := math.Sqrt(varA/nA + varB/nB)
		denom = fixLowMagnitude(denom, params.FixLow)
		return fixFinite((meanA-meanB)/denom, params), nil
	case Ratio:
		meanB = fixLowMagnitude(meanB, params.FixLow)
		return fixFinite(meanA/meanB, params), nil
	case LogRatio:
		meanB = fixLowMagnitude(meanB, params.FixLow)
		ratio := meanA / meanB
		if ratio <= 0 {
			ratio = params.FixLow
		}
		return fixFinite(math.Log2(ratio), params), nil
	case Diff:
		return fixFinite(meanA-meanB, params), nil
	default:
		return 0, fmt.Errorf("%w: unrecognized metric %d", kserr.ErrInvalidArgument, m)
	}
}

// splitByClass partitions row's values by the template's two-class label.
func splitByClass(row []float64, tmpl *dataset.Template) (classA, classB []float64) {
	for j, v := range row {
		if tmpl.ClassIndexOf(j) == 0 {
			classA = append(classA, v)
		} else {
			classB = append(classB, v)
		}
	}
	return classA, classB
}

// fixLowMagnitude floors the magnitude of v at floor, preserving sign,
// without changing a healthy, well-separated-from-zero value.
func fixLowMagnitude(v, floor float64) float64 {
	if math.Abs(v) >= floor {
		return v
	}
	if v < 0 {
		return -floor
	}
	return floor
}

// fixFinite replaces a non-finite score with the configured floor so a
// single degenerate row cannot poison downstream ranked-list validation.
func fixFinite(v float64, params Params) float32 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return float32(params.FixLow)
	}
	return float32(v)
}

func sortByScore(names []string, scores []float32, order Order) {
	idx := make([]int, len(names))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		if order == Descending {
			return scores[idx[i]] > scores[idx[j]]
		}
		return scores[idx[i]] < scores[idx[j]]
	})

	sortedNames := make([]string, len(names))
	sortedScores := make([]float32, len(scores))
	for newPos, oldPos := range idx {
		sortedNames[newPos] = names[oldPos]
		sortedScores[newPos] = scores[oldPos]
	}
	copy(names, sortedNames)
	copy(scores, sortedScores)
}
