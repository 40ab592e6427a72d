// Package wpca fits low-rank subspace models to measurement matrices whose
// entries carry independent, per-entry error bars — weighted PCA by
// alternating least squares.
//
// 🚀 What is wpca?
//
//	Classical PCA (an unweighted SVD) treats every matrix entry as equally
//	reliable. When each entry x[i,j] comes with its own standard deviation
//	σ[i,j] — heteroscedastic, uncorrelated measurement errors — the
//	maximum-likelihood rank-p model instead minimizes
//
//	  Σ_ij (x[i,j] − m[i,j])² / σ[i,j]²
//
//	over all rank-p matrices m. No closed form exists for this weighted
//	problem, so wpca alternates: fix a p-dimensional basis, project every
//	column onto it by weighted least squares, refresh the basis from the
//	projection's SVD, transpose the whole problem, repeat. It's used in:
//	  • Spectroscopic & photometric time series with known error bars
//	  • Sensor arrays with per-channel noise floors
//	  • Any "data ± uncertainty" table needing a rank-p summary
//
// ✨ Key features:
//   - inverse-variance weighting: the Gaussian maximum-likelihood objective
//   - missing entries (NaN σ) become almost-infinitely uncertain regular
//     entries — weight ≈ 0, no imputation, no special-cased algebra
//   - per-column projections run on a configurable worker pool with
//     bit-identical results for any worker count
//   - fail-fast sentinel errors for every precondition and for
//     non-convergence (no partial results, ever)
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/lowrank/wpca"
//
//	opts := wpca.DefaultOptions()
//	opts.MaxIterations = 5000
//
//	res, err := wpca.Fit(x, xsd, 2, &opts)
//	if err != nil {
//	  // errors.Is against wpca.ErrInvalidRank, wpca.ErrMaxIterations, ...
//	}
//	// res.U (M×p), res.S (p×p diagonal), res.V (N×p), res.Ssq
//
// Performance:
//
//   - Time:   O(iterations · N·(M·p² + p³)) plus one rank-p SVD per flip
//   - Memory: O(M·N) working copies + O(workers·p²) scratch
//
// Caveats: ALS converges to a local optimum seeded from the unweighted SVD;
// singular-vector sign and order for repeated singular values are
// SVD-implementation-dependent, so compare subspaces rather than raw
// vectors. See example_test.go for runnable scenarios.
package wpca
