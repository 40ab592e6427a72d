// Package wpca: the per-iteration maximum-likelihood projection.
//
// projectColumns is the inner kernel of the ALS loop. For each column i of
// the working matrix it solves the p×p normal equations
//
//	(Uᵀ Qᵢ U) α = Uᵀ Qᵢ x⁽ⁱ⁾,   Qᵢ = diag(1 / VarX[:,i])
//
// and writes U·α into column i of MLX — the weighted least-squares
// projection of that column onto span(U) under its own per-row error
// weights. Columns never interact within an iteration, so the work is
// dispatched to a worker pool over contiguous column ranges.
//
// Determinism: each column writes only its own slice of MLX and its own
// residual cell; the objective is summed afterwards in fixed column order.
// Results are therefore bit-identical for any worker count.

package wpca

import (
	"fmt"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// projectColumns fills mlx with the maximum-likelihood projection of every
// column of xw onto span(u) and returns the weighted residual objective
// Sobj = Σᵢ (xᵢ−mlxᵢ)ᵀ Qᵢ (xᵢ−mlxᵢ).
//
// Shapes: xw, varw, mlx are m×n in the current orientation; u is m×p with
// orthonormal columns. workers ≥ 1.
//
// Errors:
//   - ErrSingularSystem — some column's normal equations are not positive
//     definite (exactly singular); terminal, no partial objective.
//
// Complexity: Time O(n·(m·p² + p³)), Space O(workers·p²) scratch.
func projectColumns(xw, varw, u, mlx *mat.Dense, workers int) (float64, error) {
	m, n := xw.Dims()
	_, p := u.Dims()

	// Per-column residuals, summed in index order after the pool drains.
	resid := make([]float64, n)

	// Raw views: flat row-major access in the hot loops.
	xr := xw.RawMatrix()
	vr := varw.RawMatrix()
	ur := u.RawMatrix()
	mr := mlx.RawMatrix()

	// solveRange projects columns [lo, hi). Scratch buffers are owned by the
	// calling worker; no state is shared between ranges.
	solveRange := func(lo, hi int) error {
		var (
			w     = make([]float64, m) // inverse-variance weights for one column
			sys   = mat.NewSymDense(p, nil)
			rhs   = mat.NewVecDense(p, nil)
			alpha = mat.NewVecDense(p, nil)
			chol  mat.Cholesky
		)
		av := alpha.RawVector().Data

		var c, r, k, l int
		var acc, uk, dot, diff, rc float64
		for c = lo; c < hi; c++ {
			// Qᵢ = diag(1/VarX[:,c]); variances are strictly positive by
			// construction (validated σ² or the missing-data penalty).
			for r = 0; r < m; r++ {
				w[r] = 1.0 / vr.Data[r*vr.Stride+c]
			}

			// Normal equations: sys = UᵀQU (upper triangle), rhs = UᵀQx.
			for k = 0; k < p; k++ {
				acc = 0
				for r = 0; r < m; r++ {
					acc += w[r] * ur.Data[r*ur.Stride+k] * xr.Data[r*xr.Stride+c]
				}
				rhs.SetVec(k, acc)
				for l = k; l < p; l++ {
					acc = 0
					for r = 0; r < m; r++ {
						uk = ur.Data[r*ur.Stride+k]
						acc += w[r] * uk * ur.Data[r*ur.Stride+l]
					}
					sys.SetSym(k, l, acc)
				}
			}

			// UᵀQU is symmetric positive definite for any valid weighting;
			// a failed Cholesky means the system is numerically singular.
			if ok := chol.Factorize(sys); !ok {
				return fmt.Errorf("column %d: %w", c, ErrSingularSystem)
			}
			if err := chol.SolveVecTo(alpha, rhs); err != nil {
				return fmt.Errorf("column %d: %w", c, ErrSingularSystem)
			}

			// MLX[:,c] = U·α and the column's weighted residual.
			rc = 0
			for r = 0; r < m; r++ {
				dot = 0
				for k = 0; k < p; k++ {
					dot += ur.Data[r*ur.Stride+k] * av[k]
				}
				mr.Data[r*mr.Stride+c] = dot
				diff = xr.Data[r*xr.Stride+c] - dot
				rc += w[r] * diff * diff
			}
			resid[c] = rc
		}

		return nil
	}

	if workers <= 1 || n == 1 {
		if err := solveRange(0, n); err != nil {
			return 0, err
		}
	} else {
		g := new(errgroup.Group)
		chunk := (n + workers - 1) / workers
		for lo := 0; lo < n; lo += chunk {
			lo, hi := lo, minInt(lo+chunk, n)
			g.Go(func() error { return solveRange(lo, hi) })
		}
		if err := g.Wait(); err != nil {
			return 0, err
		}
	}

	// Fixed-order accumulation keeps the objective independent of scheduling.
	sobj := 0.0
	for _, rc := range resid {
		sobj += rc
	}

	return sobj, nil
}
