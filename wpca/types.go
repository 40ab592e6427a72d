// Package wpca: solver configuration and result types.
package wpca

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultMaxIterations caps the ALS loop. One iteration is one
	// orientation (row-space or column-space); a full round trip is two.
	DefaultMaxIterations = 20000

	// DefaultTolerance is the relative objective-change threshold
	// |Sold−Sobj|/Sobj below which the fit is declared converged.
	DefaultTolerance = 1e-10

	// DefaultWorkers = 0 lets the solver pick GOMAXPROCS workers for the
	// per-column projections. Any worker count produces bit-identical
	// results; this only affects wall-clock time.
	DefaultWorkers = 0

	// missingPenaltyFactor scales the largest observed variance to build
	// the substitute variance for missing entries, making them
	// almost-infinitely uncertain regular entries (weight ≈ 0) without
	// special-casing the matrix algebra downstream.
	missingPenaltyFactor = 1000.0
)

// Options configures the weighted-PCA ALS solver.
//
// Fields:
//   - MaxIterations — hard ceiling on ALS iterations. Reaching it without
//     converging is a terminal ErrMaxIterations; no partial result exists.
//   - Tolerance     — relative objective-change threshold for convergence,
//     evaluated on odd iterations only (a full row↔column round trip).
//   - Workers       — worker count for the per-column weighted projections.
//     0 means GOMAXPROCS. Columns never interact within an iteration, so
//     the result is identical for any value; only wall time changes.
//
// Example:
//
//	opts := wpca.DefaultOptions()
//	opts.Workers = 1 // force sequential execution
//	res, err := wpca.Fit(x, xsd, 3, &opts)
type Options struct {
	MaxIterations int
	Tolerance     float64
	Workers       int
}

// DefaultOptions returns the documented default configuration.
func DefaultOptions() Options {
	return Options{
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
		Workers:       DefaultWorkers,
	}
}

// validate checks option sanity. Returns ErrBadOptions on nonsensical
// values; never panics (options come from callers, not programmers only).
func (o *Options) validate() error {
	if o.MaxIterations <= 0 {
		return ErrBadOptions
	}
	if !(o.Tolerance > 0) || math.IsInf(o.Tolerance, 1) {
		return ErrBadOptions
	}
	if o.Workers < 0 {
		return ErrBadOptions
	}

	return nil
}

// Result packages the converged rank-p subspace model.
//
// Invariants (within floating-point tolerance):
//   - U has orthonormal columns, shape M×p (M = rows of the input X).
//   - S is diagonal with non-negative singular values in descending order.
//   - V has orthonormal columns, shape N×p.
//   - U·S·Vᵀ is the maximum-likelihood rank-p reconstruction of X under
//     inverse-variance weighting.
type Result struct {
	// U is the M×p orthonormal basis of the row space.
	U *mat.Dense

	// S is the p×p diagonal of singular values, non-increasing.
	S *mat.DiagDense

	// V is the N×p orthonormal basis of the column space.
	V *mat.Dense

	// Ssq is the final weighted residual sum Σᵢ rᵢᵀ Qᵢ rᵢ.
	Ssq float64

	// Iterations is the number of ALS iterations executed.
	Iterations int
}
