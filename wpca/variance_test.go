package wpca

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// TestBuildVariance_SquaresAndPenalty verifies σ→σ² and the missing-entry
// substitution: 1000 × the largest finite variance.
func TestBuildVariance_SquaresAndPenalty(t *testing.T) {
	xsd := mat.NewDense(2, 3, []float64{
		0.5, 2.0, math.NaN(),
		1.0, 0.1, 3.0,
	})
	xw := mat.NewDense(2, 3, []float64{
		1, 2, 99, // 99 sits at the missing position
		4, 5, 6,
	})

	varX, err := buildVariance(xsd, xw)
	require.NoError(t, err)

	assert.Equal(t, 0.25, varX.At(0, 0))
	assert.Equal(t, 4.0, varX.At(0, 1))
	assert.Equal(t, 1.0, varX.At(1, 0))
	assert.InDelta(t, 0.01, varX.At(1, 1), 1e-15)
	assert.Equal(t, 9.0, varX.At(1, 2))

	// VarMax = 9 → penalty = 9000; the paired measurement is zeroed.
	assert.Equal(t, 9000.0, varX.At(0, 2), "missing entry gets 1000 × VarMax")
	assert.Equal(t, 0.0, xw.At(0, 2), "measurement at missing position is neutralized")
	assert.Equal(t, 1.0, xw.At(0, 0), "observed measurements stay untouched")
}

// TestBuildVariance_AllMissing rejects a σ matrix with no observed entry:
// no finite variance exists to anchor the penalty.
func TestBuildVariance_AllMissing(t *testing.T) {
	xsd := mat.NewDense(2, 2, []float64{
		math.NaN(), math.NaN(),
		math.NaN(), math.NaN(),
	})
	xw := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	_, err := buildVariance(xsd, xw)
	assert.ErrorIs(t, err, ErrAllMissing)
}

// TestValidateInputs_EntryPrecedence checks that an exact zero reports
// ErrZeroStdDev even when later entries are negative, and that the scan is
// row-major (first offender wins).
func TestValidateInputs_EntryPrecedence(t *testing.T) {
	x := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	xsd := mat.NewDense(2, 2, []float64{
		1.0, 0.0,
		-1.0, 1.0,
	})

	err := validateInputs(x, xsd, 1)
	assert.ErrorIs(t, err, ErrZeroStdDev, "the (0,1) zero precedes the (1,0) negative")
}
