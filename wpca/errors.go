// Package wpca: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the wpca
// package. All stages MUST return these sentinels and tests MUST check them
// via errors.Is. No stage panics on user-triggered error conditions.

package wpca

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "wpca: ..." for consistency and to allow
// easy grepping across logs. Sentinels may be wrapped with
// fmt.Errorf("ctx: %w", ErrX) for context — callers still match with
// errors.Is.
//
// ERROR PRIORITY (documented, enforced in tests):
// bad options -> nil input -> invalid rank -> dimension mismatch -> bad
// entries (zero before non-positive per entry) -> runtime failures
// (all-missing, SVD, singular system, max iterations).

var (
	// ErrNilMatrix indicates that a nil *mat.Dense was passed to Fit.
	ErrNilMatrix = errors.New("wpca: nil matrix")

	// ErrInvalidRank is returned when the requested rank p violates
	// 1 ≤ p ≤ min(M,N). Checked before any matrix arithmetic.
	ErrInvalidRank = errors.New("wpca: rank must satisfy 1 <= p <= min(rows, cols)")

	// ErrDimensionMismatch indicates the measurement and standard-deviation
	// matrices differ in shape.
	ErrDimensionMismatch = errors.New("wpca: measurement and stddev matrices differ in shape")

	// ErrZeroStdDev is returned when a standard-deviation entry equals
	// exactly zero. Zero is an error condition, not a missing-data marker;
	// missing entries are NaN.
	ErrZeroStdDev = errors.New("wpca: standard deviation is exactly zero")

	// ErrNonPositiveStdDev is returned when a standard-deviation entry is
	// negative or non-finite (±Inf) — anything that is neither missing (NaN)
	// nor strictly positive and finite.
	ErrNonPositiveStdDev = errors.New("wpca: standard deviation must be positive and finite")

	// ErrNaNInf signals a NaN or ±Inf measurement at a position whose
	// standard deviation is observed. Measurements at missing positions are
	// exempt (their weight is negligible and the value is zeroed).
	ErrNaNInf = errors.New("wpca: NaN or Inf measurement at observed position")

	// ErrAllMissing indicates every standard-deviation entry is missing, so
	// no finite variance exists to anchor the missing-data penalty.
	ErrAllMissing = errors.New("wpca: standard-deviation matrix has no observed entries")

	// ErrBadOptions indicates nonsensical solver options (MaxIterations <= 0,
	// Tolerance <= 0 or non-finite, Workers < 0).
	ErrBadOptions = errors.New("wpca: invalid options")

	// ErrSVDFailed indicates the underlying SVD factorization did not
	// converge for the current working matrix.
	ErrSVDFailed = errors.New("wpca: SVD factorization failed")

	// ErrSingularSystem indicates the p×p normal-equations system for some
	// column was exactly singular and no weighted projection exists.
	ErrSingularSystem = errors.New("wpca: singular normal equations")

	// ErrMaxIterations is returned when the iteration ceiling is reached
	// before the relative objective change falls below the tolerance.
	// This is terminal: no partial subspace is returned.
	ErrMaxIterations = errors.New("wpca: maximum iterations exceeded before convergence")
)
