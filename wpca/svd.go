// Package wpca: truncated SVD primitive.
//
// The solver consumes SVD as an external collaborator with standard
// numerical semantics; this file adapts gonum's dense factorization to the
// "top-p singular triplets" shape the ALS loop needs.

package wpca

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// truncatedSVD returns the top-p singular triplets of a: u is r×p, s holds
// the p largest singular values in descending order, v is c×p. gonum's thin
// factorization already orders values descending, so truncation is a column
// slice. Fresh matrices are returned on every call; nothing is nested
// across iterations.
//
// Known non-determinism: for repeated singular values the choice (and sign)
// of singular vectors is implementation-dependent. Callers comparing bases
// must compare subspaces, not raw vectors.
func truncatedSVD(a *mat.Dense, p int) (u *mat.Dense, s []float64, v *mat.Dense, err error) {
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		r, c := a.Dims()
		return nil, nil, nil, fmt.Errorf("%dx%d matrix: %w", r, c, ErrSVDFailed)
	}

	var uf, vf mat.Dense
	svd.UTo(&uf)
	svd.VTo(&vf)

	// Slice the thin factors down to the leading p columns and copy them out
	// so the truncated views own their storage.
	ur, _ := uf.Dims()
	vr, _ := vf.Dims()
	u = mat.DenseCopyOf(uf.Slice(0, ur, 0, p))
	v = mat.DenseCopyOf(vf.Slice(0, vr, 0, p))

	s = make([]float64, p)
	copy(s, svd.Values(nil)[:p])

	return u, s, v, nil
}
