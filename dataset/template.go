package dataset

import (
	"fmt"

	"github.com/carbocation/gsea/kserr"
	"github.com/carbocation/pfx"
)

// Template is a per-sample label vector bound to a Dataset's columns. A
// categorical Template carries a two-class label per sample (used by
// Signal2Noise, TTest, Ratio, LogRatio, Diff); a continuous Template carries
// a numeric phenotype per sample (used by Pearson).
type Template struct {
	name       string
	continuous bool

	// classOf[j] is the class label of sample j. Populated only for
	// categorical templates.
	classOf []string
	classes []string

	// phenotype[j] is the continuous phenotype of sample j. Populated
	// only for continuous templates.
	phenotype []float64
}

// NewCategoricalTemplate builds a two-class Template from a per-sample class
// label slice. Exactly two distinct labels must be present.
func NewCategoricalTemplate(name string, classOf []string) (*Template, error) {
	distinct := make(map[string]struct{})
	for _, c := range classOf {
		distinct[c] = struct{}{}
	}
	if len(distinct) != 2 {
		return nil, pfx.Err(fmt.Errorf("%w: categorical template %q must have exactly 2 classes, found %d", kserr.ErrInvalidArgument, name, len(distinct)))
	}

	classes := make([]string, 0, 2)
	for c := range distinct {
		classes = append(classes, c)
	}
	// Deterministic ordering: the class that appears first in classOf is
	// class 0.
	if classes[0] != classOf[0] {
		classes[0], classes[1] = classes[1], classes[0]
	}

	return &Template{
		name:    name,
		classOf: append([]string(nil), classOf...),
		classes: classes,
	}, nil
}

// NewContinuousTemplate builds a continuous-phenotype Template, used with
// the Pearson metric.
func NewContinuousTemplate(name string, phenotype []float64) *Template {
	return &Template{
		name:       name,
		continuous: true,
		phenotype:  append([]float64(nil), phenotype...),
	}
}

// Name returns the template's label.
func (t *Template) Name() string { return t.name }

// IsContinuous reports whether this is a continuous-phenotype template.
func (t *Template) IsContinuous() bool { return t.continuous }

// NumSamples returns the number of samples the template labels.
func (t *Template) NumSamples() int {
	if t.continuous {
		return len(t.phenotype)
	}
	return len(t.classOf)
}

// Classes returns the two class labels of a categorical template, class 0
// first.
func (t *Template) Classes() []string { return t.classes }

// ClassOf returns the class label of sample j (categorical templates only).
func (t *Template) ClassOf(j int) string { return t.classOf[j] }

// ClassIndexOf returns 0 or 1 depending on which class sample j belongs to
// (categorical templates only).
func (t *Template) ClassIndexOf(j int) int {
	if t.classOf[j] == t.classes[0] {
		return 0
	}
	return 1
}

// Phenotype returns the continuous value of sample j (continuous templates
// only).
func (t *Template) Phenotype(j int) float64 { return t.phenotype[j] }

// Permute returns a new Template with its per-sample labels reassigned
// according to perm, a permutation of [0, NumSamples()). It is the building
// block randomize.Template uses to generate null-model templates; it does
// not itself draw randomness.
func (t *Template) Permute(perm []int) *Template {
	if t.continuous {
		out := make([]float64, len(perm))
		for i, p := range perm {
			out[i] = t.phenotype[p]
		}
		return NewContinuousTemplate(t.name, out)
	}

	out := make([]string, len(perm))
	for i, p := range perm {
		out[i] = t.classOf[p]
	}
	permuted := &Template{name: t.name, classOf: out, classes: append([]string(nil), t.classes...)}
	return permuted
}

// DatasetTemplate binds a Dataset to the Template that labels its columns.
// metric.ScoreDataset takes this pairing so callers cannot accidentally mix
// a dataset with a template sized for a different dataset.
type DatasetTemplate struct {
	Dataset  *Dataset
	Template *Template
}

// NewDatasetTemplate validates that the template's sample count matches the
// dataset's column count before binding them.
func NewDatasetTemplate(ds *Dataset, tmpl *Template) (*DatasetTemplate, error) {
	if ds == nil || tmpl == nil {
		return nil, pfx.Err(fmt.Errorf("%w: dataset and template must not be nil", kserr.ErrInvalidArgument))
	}
	if ds.NumCols() != tmpl.NumSamples() {
		return nil, pfx.Err(fmt.Errorf("%w: dataset %q has %d samples but template %q has %d", kserr.ErrInvalidArgument, ds.name, ds.NumCols(), tmpl.name, tmpl.NumSamples()))
	}
	return &DatasetTemplate{Dataset: ds, Template: tmpl}, nil
}
