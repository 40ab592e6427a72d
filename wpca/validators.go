// Package wpca: fail-fast precondition checks.
//
// Purpose:
//   - Single, canonical source of truth for input validation.
//   - Keep the solver minimal by delegating shape/rank/entry checks here.
//   - Return plain sentinel errors (wrapped with position context where it
//     helps) so call sites and tests match with errors.Is.
//
// All checks run before any matrix arithmetic: a rejected input never
// reaches the SVD or the ALS loop.

package wpca

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// validateInputs checks, in order: non-nil matrices, rank bounds, shape
// agreement, and standard-deviation entries. Entry rule: each Xsd entry is
// either NaN (the missing marker) or strictly positive and finite. Exact
// zero maps to ErrZeroStdDev; negative or ±Inf maps to ErrNonPositiveStdDev.
// Time O(M·N), Space O(1).
func validateInputs(x, xsd *mat.Dense, p int) error {
	if x == nil || xsd == nil {
		return ErrNilMatrix
	}

	m, n := x.Dims()
	if p < 1 || p > minInt(m, n) {
		return fmt.Errorf("p=%d, min(m,n)=%d: %w", p, minInt(m, n), ErrInvalidRank)
	}

	sr, sc := xsd.Dims()
	if sr != m || sc != n {
		return fmt.Errorf("%dx%d vs %dx%d: %w", m, n, sr, sc, ErrDimensionMismatch)
	}

	// Entry scan in fixed row-major order; first offending entry wins.
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			sd := xsd.At(i, j)
			if math.IsNaN(sd) {
				continue // missing entry, handled by the variance preprocessor
			}
			if sd == 0 {
				return fmt.Errorf("entry (%d,%d): %w", i, j, ErrZeroStdDev)
			}
			if sd < 0 || math.IsInf(sd, 0) {
				return fmt.Errorf("entry (%d,%d)=%g: %w", i, j, sd, ErrNonPositiveStdDev)
			}
			// Observed position: the paired measurement must be finite.
			if xv := x.At(i, j); math.IsNaN(xv) || math.IsInf(xv, 0) {
				return fmt.Errorf("entry (%d,%d)=%g: %w", i, j, xv, ErrNaNInf)
			}
		}
	}

	return nil
}

// minInt returns the smaller of two ints.
func minInt(a, b int) int {
	if a < b {
		return a
	}

	return b
}
