package wpca

import (
	"fmt"
	"math"
	"runtime"

	"gonum.org/v1/gonum/mat"
)

// Fit — maximum-likelihood low-rank subspace model under heteroscedastic errors
//
// Description:
//
//	Fit computes the rank-p factorization U·S·Vᵀ of the measurement matrix
//	x that minimizes the inverse-variance-weighted residual sum — the
//	maximum-likelihood estimate when every entry carries independent
//	Gaussian noise with its own standard deviation xsd[i,j]. Missing
//	entries are marked by NaN in xsd and contribute near-zero weight.
//
// Algorithm Outline:
//  1. Validate: 1 ≤ p ≤ min(M,N); x and xsd share dimensions; every σ is
//     NaN (missing) or strictly positive and finite; measurements at
//     observed positions are finite.
//  2. Preprocess: VarX = xsd² with missing entries replaced by
//     1000 × max(finite variance); measurements at missing cells zeroed.
//  3. Seed: truncated rank-p SVD of the raw x (unweighted — a starting
//     subspace only, the error structure is ignored here).
//  4. Iterate (ALS): project every column of the working matrix onto
//     span(U) by weighted least squares and accumulate the objective
//     Sobj; on odd iterations test |Sold−Sobj|/Sobj < Tolerance (the
//     orientations alternate each iteration, so the test is spaced a full
//     row↔column round trip apart and never fires mid-flip); an objective
//     below Tolerance × the data's weighted energy counts as converged
//     outright (exact fit). Otherwise take a fresh rank-p SVD of the
//     projection MLX, transpose the working matrix and its variances
//     together, and continue with the V basis of that SVD — the transpose
//     trick lets one per-column routine serve both orientations.
//  5. Finalize: one more rank-p SVD of the final MLX, packaged as Result.
//     Convergence is only declared on odd iterations, so MLX is back in
//     the original M×N orientation at loop exit.
//
// Ownership: x and xsd are read-only for Fit; the solver works on copies.
//
// Errors (all terminal, matched via errors.Is):
//   - ErrNilMatrix, ErrInvalidRank, ErrDimensionMismatch, ErrZeroStdDev,
//     ErrNonPositiveStdDev, ErrNaNInf, ErrAllMissing, ErrBadOptions —
//     precondition failures, raised before any matrix arithmetic.
//   - ErrSVDFailed, ErrSingularSystem — numerical failures mid-run.
//   - ErrMaxIterations — the iteration ceiling was reached without
//     convergence. No partial result is returned: the fixed point was
//     never certified and downstream consumers must not mistake a
//     truncated run for a model.
//
// ALS is a local-optimum heuristic seeded from the unweighted SVD; it does
// not guarantee a global optimum. The objective is only compared every
// other iteration, so apparent non-monotonicity between checks is expected.
//
// Example:
//
//	opts := wpca.DefaultOptions()
//	res, err := wpca.Fit(x, xsd, 2, &opts)
//	if err != nil {
//	  // no model produced
//	}
//	recon := new(mat.Dense)
//	recon.Product(res.U, res.S, res.V.T())
//
// Passing opts == nil uses DefaultOptions(). Zero-valued MaxIterations or
// Tolerance fields fall back to their defaults; Workers: 0 ⇒ GOMAXPROCS.
//
// Complexity per iteration: O(N·(M·p² + p³)) for the projections plus one
// rank-p SVD of an M×N matrix.
func Fit(x, xsd *mat.Dense, p int, opts *Options) (*Result, error) {
	// Resolve options: nil or zero-valued fields mean defaults.
	o := DefaultOptions()
	if opts != nil {
		if opts.MaxIterations != 0 {
			o.MaxIterations = opts.MaxIterations
		}
		if opts.Tolerance != 0 {
			o.Tolerance = opts.Tolerance
		}
		o.Workers = opts.Workers
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	// Preconditions — all failures abort before any numeric work.
	if err := validateInputs(x, xsd, p); err != nil {
		return nil, err
	}

	// Exclusive working copies; the caller's matrices are never mutated.
	xw := mat.DenseCopyOf(x)
	varw, err := buildVariance(xsd, xw)
	if err != nil {
		return nil, err
	}

	// Seed subspace from the unweighted SVD of the raw data.
	u, _, _, err := truncatedSVD(xw, p)
	if err != nil {
		return nil, err
	}

	workers := o.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Absolute convergence floor: when the objective is negligible against
	// the weighted energy of the data itself (exact rank-p inputs,
	// p = min(M,N)), the relative-change test would only compare
	// round-off jitter. Tolerance × Σ x²/σ² is "zero residual" at the
	// configured precision.
	floor := o.Tolerance * weightedEnergy(xw, varw)

	// Loop state: current orientation (rows×cols), previous objective,
	// iteration counter. X and VarX always share the same orientation.
	rows, cols := xw.Dims()
	mlx := mat.NewDense(rows, cols, nil)
	sold := 0.0
	var sobj float64
	var iter int

	for iter = 1; ; iter++ {
		sobj, err = projectColumns(xw, varw, u, mlx, workers)
		if err != nil {
			return nil, err
		}

		// Convergence test on odd iterations only, so the loop always exits
		// in the original orientation and never declares victory mid-flip.
		// Sold starts at zero: the first check sees a relative change of 1.
		if iter%2 == 1 {
			if sobj <= floor || math.Abs(sold-sobj)/sobj < o.Tolerance {
				break
			}
		}

		if iter >= o.MaxIterations {
			return nil, fmt.Errorf("after %d iterations: %w", iter, ErrMaxIterations)
		}

		// Orientation flip: refresh the subspace from the just-computed
		// maximum-likelihood estimate (not the original data), transpose
		// the whole problem, and adopt the V basis — the column space of
		// MLXᵀ. Row-basis and column-basis swap roles every iteration.
		sold = sobj
		_, _, v, svdErr := truncatedSVD(mlx, p)
		if svdErr != nil {
			return nil, svdErr
		}
		xw = mat.DenseCopyOf(xw.T())
		varw = mat.DenseCopyOf(varw.T())
		rows, cols = cols, rows
		mlx = mat.NewDense(rows, cols, nil)
		u = v
	}

	// Finalizer: one more rank-p SVD of the last maximum-likelihood
	// estimate yields the returned triplets with U matching the original
	// row count.
	uF, sF, vF, err := truncatedSVD(mlx, p)
	if err != nil {
		return nil, err
	}

	return &Result{
		U:          uF,
		S:          mat.NewDiagDense(p, sF),
		V:          vF,
		Ssq:        sobj,
		Iterations: iter,
	}, nil
}

// weightedEnergy returns Σ x[i,j]²/VarX[i,j] — the objective of the trivial
// zero model, used to scale the absolute convergence floor.
func weightedEnergy(x, varX *mat.Dense) float64 {
	r, c := x.Dims()
	sum := 0.0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := x.At(i, j)
			sum += v * v / varX.At(i, j)
		}
	}

	return sum
}
