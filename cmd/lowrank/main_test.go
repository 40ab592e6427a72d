package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lowrank/matcsv"
	"github.com/katalvlaran/lowrank/wpca"
)

// writeInputs generates a noisy rank-2 measurement pair on disk and returns
// the two CSV paths.
func writeInputs(t *testing.T, dir string) (dataPath, stddevPath string) {
	t.Helper()
	const m, n = 12, 6
	rng := rand.New(rand.NewSource(9))

	x := mat.NewDense(m, n, nil)
	xsd := mat.NewDense(m, n, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			signal := math.Sin(float64(i+1))*math.Cos(float64(j+1)) + 0.5*math.Cos(float64(2*(i+j)))
			sd := 0.05 + 0.1*rng.Float64()
			x.Set(i, j, signal+sd*rng.NormFloat64())
			xsd.Set(i, j, sd)
		}
	}
	xsd.Set(1, 1, math.NaN()) // one lost reading

	dataPath = filepath.Join(dir, "x.csv")
	stddevPath = filepath.Join(dir, "xsd.csv")
	require.NoError(t, matcsv.WriteDense(dataPath, x))
	require.NoError(t, matcsv.WriteDense(stddevPath, xsd))

	return dataPath, stddevPath
}

// TestRunFit_EndToEnd drives the command path: CSV in, three CSVs out, with
// U re-readable and of the requested shape.
func TestRunFit_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	dataPath, stddevPath := writeInputs(t, dir)
	outPrefix := filepath.Join(dir, "model")

	err := runFit(dataPath, stddevPath, 2, wpca.DefaultMaxIterations, wpca.DefaultTolerance, 0, outPrefix)
	require.NoError(t, err)

	for _, suffix := range []string{"u", "s", "v"} {
		path := fmt.Sprintf("%s.%s.csv", outPrefix, suffix)
		_, statErr := os.Stat(path)
		assert.NoError(t, statErr, "%s must be written", path)
	}

	u, err := matcsv.ReadDense(outPrefix + ".u.csv")
	require.NoError(t, err)
	ur, uc := u.Dims()
	assert.Equal(t, 12, ur)
	assert.Equal(t, 2, uc)

	s, err := matcsv.ReadDense(outPrefix + ".s.csv")
	require.NoError(t, err)
	assert.InDelta(t, 0, s.At(0, 1), 1e-15, "S is diagonal")
	assert.GreaterOrEqual(t, s.At(0, 0), s.At(1, 1), "singular values descend")
}

// TestRunFit_SolverErrorPropagates makes the solver fail (impossible rank)
// and expects the sentinel to surface through the command layer with no
// output files written.
func TestRunFit_SolverErrorPropagates(t *testing.T) {
	dir := t.TempDir()
	dataPath, stddevPath := writeInputs(t, dir)
	outPrefix := filepath.Join(dir, "model")

	err := runFit(dataPath, stddevPath, 99, wpca.DefaultMaxIterations, wpca.DefaultTolerance, 0, outPrefix)
	assert.ErrorIs(t, err, wpca.ErrInvalidRank)

	_, statErr := os.Stat(outPrefix + ".u.csv")
	assert.True(t, os.IsNotExist(statErr), "a failed fit must not leave partial output")
}

// TestFitCmd_RequiresFlags checks cobra-level flag validation.
func TestFitCmd_RequiresFlags(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"fit"})
	err := root.Execute()
	assert.Error(t, err, "fit without required flags must fail")
}
