// Package lowrank is a toolkit for low-rank subspace modeling of noisy
// measurement matrices with per-entry, heteroscedastic uncertainties.
//
// 🚀 What is lowrank?
//
//	Ordinary PCA minimizes an unweighted sum of squared residuals and
//	silently assumes every measurement is equally trustworthy. Real
//	instruments rarely oblige: each entry of a data matrix comes with its
//	own error bar, and some entries are missing altogether. lowrank
//	computes the maximum-likelihood rank-p factorization under that error
//	structure — independent, entry-specific Gaussian noise — by
//	alternating weighted least squares between the row and column spaces.
//
// ✨ Why choose lowrank?
//
//   - Error-aware — residuals are weighted by inverse error variance,
//     the Gaussian maximum-likelihood objective
//   - Missing-data tolerant — unobserved entries carry near-zero weight,
//     no imputation step required
//   - Deterministic — identical inputs give identical output for any
//     worker count
//   - Built on gonum — dense storage, SVD and linear solves come from
//     gonum.org/v1/gonum/mat
//
// Under the hood, everything is organized under three surfaces:
//
//	wpca/        — the ALS solver: Fit(X, Xsd, p, opts) → U, S, V, Ssq
//	matcsv/      — CSV ⇄ *mat.Dense with NaN-aware missing cells
//	cmd/lowrank/ — command-line front-end (lowrank fit ...)
//
// Quick sketch:
//
//	X (M×N) ± Xsd (M×N)  ──►  U·S·Vᵀ, rank p, weighted residual Ssq
//
// Dive into wpca/doc.go for the algorithm walkthrough and examples/ for
// runnable scenarios.
//
//	go get github.com/katalvlaran/lowrank/wpca
package lowrank
