// Package kserr declares the sentinel error kinds shared across the GSEA
// kernel packages. Callers should compare against these with errors.Is;
// every propagation boundary wraps the underlying cause with
// github.com/carbocation/pfx so a stack trace of call sites is preserved.
package kserr

import "errors"

var (
	// ErrInvalidArgument is returned for nil/empty cohorts, empty gene sets,
	// dataset/ranked-list size mismatches, and non-finite scores.
	ErrInvalidArgument = errors.New("gsea: invalid argument")

	// ErrGeneSetDegenerate is returned when a gene set has zero qualified
	// members after intersection with a ranked list.
	ErrGeneSetDegenerate = errors.New("gsea: gene set has zero qualified members")

	// ErrDeepNotAvailable is returned when a deep-only field (ESProfile,
	// hit indices, leading edge) is requested on a score computed without
	// storeDeep.
	ErrDeepNotAvailable = errors.New("gsea: deep fields not available; score was not computed with storeDeep=true")
)
