// Package wpca: variance preprocessing.
//
// Converts the validated standard-deviation matrix into the variance matrix
// that drives inverse-variance weighting, substituting a huge penalty
// variance for missing entries.

package wpca

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// buildVariance computes VarX = Xsd² element-wise and replaces each missing
// (NaN) entry with missingPenaltyFactor × max(finite variance). Missing
// observations thereby carry near-zero weight as ordinary entries — no
// special-cased algebra downstream. Measurement values at missing positions
// are zeroed in xw so NaN cannot leak into the arithmetic (their weight is
// negligible, so the value is immaterial).
//
// xw is the solver's working copy of X and is mutated in place.
// Returns ErrAllMissing when no finite variance exists to anchor the
// penalty. Time O(M·N), Space O(M·N) for the new variance matrix.
func buildVariance(xsd *mat.Dense, xw *mat.Dense) (*mat.Dense, error) {
	m, n := xsd.Dims()
	varX := mat.NewDense(m, n, nil)

	// Pass 1: square observed entries, track the largest finite variance.
	varMax := 0.0
	observed := false
	var i, j int
	var sd, v float64
	for i = 0; i < m; i++ {
		for j = 0; j < n; j++ {
			sd = xsd.At(i, j)
			if math.IsNaN(sd) {
				varX.Set(i, j, math.NaN()) // placeholder, replaced below
				continue
			}
			v = sd * sd
			varX.Set(i, j, v)
			observed = true
			if v > varMax {
				varMax = v
			}
		}
	}
	if !observed {
		return nil, ErrAllMissing
	}

	// Pass 2: substitute the penalty variance and neutralize the paired
	// measurement value.
	penalty := missingPenaltyFactor * varMax
	for i = 0; i < m; i++ {
		for j = 0; j < n; j++ {
			if math.IsNaN(varX.At(i, j)) {
				varX.Set(i, j, penalty)
				xw.Set(i, j, 0)
			}
		}
	}

	return varX, nil
}
