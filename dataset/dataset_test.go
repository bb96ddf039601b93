package dataset

import "testing"

func TestNewDatasetRejectsMismatchedRowNames(t *testing.T) {
	_, err := NewDataset("d", []string{"g1", "g2"}, []string{"s1"}, [][]float64{{1}})
	if err == nil {
		t.Fatalf("expected an error for mismatched row name count")
	}
}

func TestNewDatasetRejectsDuplicateRowNames(t *testing.T) {
	_, err := NewDataset("d", []string{"g1", "g1"}, []string{"s1"}, [][]float64{{1}, {2}})
	if err == nil {
		t.Fatalf("expected an error for duplicate row names")
	}
}

func TestNewDatasetRejectsRaggedRows(t *testing.T) {
	_, err := NewDataset("d", []string{"g1", "g2"}, []string{"s1", "s2"}, [][]float64{{1, 2}, {3}})
	if err == nil {
		t.Fatalf("expected an error for a ragged row")
	}
}

func TestDatasetAccessors(t *testing.T) {
	d, err := NewDataset("d", []string{"g1", "g2"}, []string{"s1", "s2", "s3"}, [][]float64{
		{1, 2, 3},
		{4, 5, 6},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.NumRows() != 2 || d.NumCols() != 3 {
		t.Fatalf("unexpected dimensions: %d x %d", d.NumRows(), d.NumCols())
	}
	if d.Value(1, 2) != 6 {
		t.Fatalf("expected Value(1,2)==6, got %v", d.Value(1, 2))
	}
	if got := d.Row(1); got[0] != 4 || got[2] != 6 {
		t.Fatalf("unexpected row values: %v", got)
	}
}

func TestNewCategoricalTemplateRequiresTwoClasses(t *testing.T) {
	if _, err := NewCategoricalTemplate("t", []string{"a", "a", "a"}); err == nil {
		t.Fatalf("expected an error for a single-class template")
	}
	if _, err := NewCategoricalTemplate("t", []string{"a", "b", "c"}); err == nil {
		t.Fatalf("expected an error for a three-class template")
	}
}

func TestCategoricalTemplateClassIndex(t *testing.T) {
	tmpl, err := NewCategoricalTemplate("t", []string{"wt", "mut", "wt", "mut"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tmpl.ClassIndexOf(0) != 0 || tmpl.ClassIndexOf(1) != 1 {
		t.Fatalf("expected sample 0 in class 0 and sample 1 in class 1")
	}
	if tmpl.Classes()[0] != "wt" {
		t.Fatalf("expected class 0 to be the first label seen (%q), got %q", "wt", tmpl.Classes()[0])
	}
}

func TestTemplatePermute(t *testing.T) {
	tmpl, err := NewCategoricalTemplate("t", []string{"wt", "mut", "wt", "mut"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	permuted := tmpl.Permute([]int{3, 2, 1, 0})
	if permuted.ClassOf(0) != "mut" || permuted.ClassOf(3) != "wt" {
		t.Fatalf("unexpected permuted classes: %v", []string{permuted.ClassOf(0), permuted.ClassOf(1), permuted.ClassOf(2), permuted.ClassOf(3)})
	}
}

func TestNewDatasetTemplateRejectsSizeMismatch(t *testing.T) {
	d, err := NewDataset("d", []string{"g1"}, []string{"s1", "s2"}, [][]float64{{1, 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tmpl, err := NewCategoricalTemplate("t", []string{"a", "b", "a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewDatasetTemplate(d, tmpl); err == nil {
		t.Fatalf("expected an error for a sample-count mismatch")
	}
}
