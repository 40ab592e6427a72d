package wpca_test

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lowrank/wpca"
)

// benchmarkFit runs Fit on an m×n rank-p-plus-noise matrix with the given
// worker count. It resets the timer after data generation and fails on
// unexpected errors.
func benchmarkFit(b *testing.B, m, n, p, workers int) {
	rng := rand.New(rand.NewSource(1))
	x := mat.NewDense(m, n, nil)
	xsd := mat.NewDense(m, n, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			signal := 0.0
			for k := 1; k <= p; k++ {
				signal += float64((i%(k+2))*(j%(k+3))) / float64(k)
			}
			sd := 0.05 + 0.5*rng.Float64()
			x.Set(i, j, signal+sd*rng.NormFloat64())
			xsd.Set(i, j, sd)
		}
	}

	opts := wpca.DefaultOptions()
	opts.Workers = workers

	b.ResetTimer() // ignore setup time
	for i := 0; i < b.N; i++ {
		if _, err := wpca.Fit(x, xsd, p, &opts); err != nil {
			b.Fatalf("Fit failed: %v", err)
		}
	}
}

func BenchmarkFit_Small_Sequential(b *testing.B)  { benchmarkFit(b, 50, 20, 3, 1) }
func BenchmarkFit_Small_Parallel(b *testing.B)    { benchmarkFit(b, 50, 20, 3, 0) }
func BenchmarkFit_Medium_Sequential(b *testing.B) { benchmarkFit(b, 200, 80, 5, 1) }
func BenchmarkFit_Medium_Parallel(b *testing.B)   { benchmarkFit(b, 200, 80, 5, 0) }
