// Package dataset holds the in-memory numeric matrix and class-label
// template that the metric package scores into a ranked list. Parsing a
// dataset or chip file from disk is out of scope; callers are expected to
// have already materialized rows, columns, and the data matrix.
package dataset

import (
	"fmt"

	"github.com/carbocation/gsea/kserr"
	"github.com/carbocation/pfx"
)

// Dataset is a row-major numeric matrix: rows are features (genes/probes),
// columns are samples.
type Dataset struct {
	name     string
	rowNames []string
	colNames []string
	data     [][]float64
}

// NewDataset builds a Dataset from row-major data. Row and column name
// counts must match the matrix dimensions, row names must be unique, and
// every row must have the same number of columns.
func NewDataset(name string, rowNames, colNames []string, data [][]float64) (*Dataset, error) {
	if len(rowNames) != len(data) {
		return nil, pfx.Err(fmt.Errorf("%w: dataset %q has %d row names but %d data rows", kserr.ErrInvalidArgument, name, len(rowNames), len(data)))
	}

	seen := make(map[string]struct{}, len(rowNames))
	for _, r := range rowNames {
		if _, dup := seen[r]; dup {
			return nil, pfx.Err(fmt.Errorf("%w: duplicate row name %q in dataset %q", kserr.ErrInvalidArgument, r, name))
		}
		seen[r] = struct{}{}
	}

	for i, row := range data {
		if len(row) != len(colNames) {
			return nil, pfx.Err(fmt.Errorf("%w: dataset %q row %d has %d values but %d column names", kserr.ErrInvalidArgument, name, i, len(row), len(colNames)))
		}
	}

	return &Dataset{
		name:     name,
		rowNames: append([]string(nil), rowNames...),
		colNames: append([]string(nil), colNames...),
		data:     copyRows(data),
	}, nil
}

func copyRows(data [][]float64) [][]float64 {
	out := make([][]float64, len(data))
	for i, row := range data {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// Name returns the dataset's label.
func (d *Dataset) Name() string { return d.name }

// NumRows returns the feature count.
func (d *Dataset) NumRows() int { return len(d.rowNames) }

// NumCols returns the sample count.
func (d *Dataset) NumCols() int { return len(d.colNames) }

// RowName returns the feature name of row i.
func (d *Dataset) RowName(i int) string { return d.rowNames[i] }

// ColName returns the sample name of column j.
func (d *Dataset) ColName(j int) string { return d.colNames[j] }

// RowNames returns the full feature name list. Must not be mutated.
func (d *Dataset) RowNames() []string { return d.rowNames }

// Row returns the values of feature row i across all samples. Must not be
// mutated.
func (d *Dataset) Row(i int) []float64 { return d.data[i] }

// Value returns the single value at row i, column j.
func (d *Dataset) Value(i, j int) float64 { return d.data[i][j] }
