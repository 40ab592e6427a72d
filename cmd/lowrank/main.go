// Command lowrank fits a heteroscedastic-error low-rank subspace model to a
// measurement matrix stored as CSV.
//
// Usage:
//
//	lowrank fit --data X.csv --stddev XSD.csv --rank 3 --out model
//
// reads the measurements from X.csv and their per-entry standard deviations
// from XSD.csv (NaN/NA/empty cells mark missing entries), runs the weighted
// ALS solver, and writes model.u.csv, model.s.csv and model.v.csv.
//
// The solver itself carries no logging; this command is the caller and owns
// observability. All solver failures are terminal — the command logs the
// error and exits non-zero with no partial output.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lowrank/matcsv"
	"github.com/katalvlaran/lowrank/wpca"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
	With().Timestamp().Logger()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lowrank",
		Short:         "Low-rank subspace modeling under per-entry measurement errors",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newFitCmd())

	return root
}

func newFitCmd() *cobra.Command {
	var (
		dataPath   string
		stddevPath string
		rank       int
		maxIter    int
		tol        float64
		workers    int
		outPrefix  string
	)

	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit a rank-p model to a measurement matrix with known error bars",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFit(dataPath, stddevPath, rank, maxIter, tol, workers, outPrefix)
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "CSV file with the measurement matrix X (required)")
	cmd.Flags().StringVar(&stddevPath, "stddev", "", "CSV file with per-entry standard deviations (required)")
	cmd.Flags().IntVar(&rank, "rank", 0, "target rank p, 1 <= p <= min(rows, cols) (required)")
	cmd.Flags().IntVar(&maxIter, "max-iter", wpca.DefaultMaxIterations, "iteration ceiling")
	cmd.Flags().Float64Var(&tol, "tol", wpca.DefaultTolerance, "relative convergence tolerance")
	cmd.Flags().IntVar(&workers, "workers", wpca.DefaultWorkers, "projection workers (0 = GOMAXPROCS)")
	cmd.Flags().StringVar(&outPrefix, "out", "model", "output prefix for <out>.u.csv, <out>.s.csv, <out>.v.csv")
	_ = cmd.MarkFlagRequired("data")
	_ = cmd.MarkFlagRequired("stddev")
	_ = cmd.MarkFlagRequired("rank")

	return cmd
}

func runFit(dataPath, stddevPath string, rank, maxIter int, tol float64, workers int, outPrefix string) error {
	x, err := matcsv.ReadDense(dataPath)
	if err != nil {
		log.Error().Err(err).Str("path", dataPath).Msg("loading measurement matrix")

		return err
	}
	xsd, err := matcsv.ReadDense(stddevPath)
	if err != nil {
		log.Error().Err(err).Str("path", stddevPath).Msg("loading stddev matrix")

		return err
	}

	rows, cols := x.Dims()
	log.Info().
		Int("rows", rows).Int("cols", cols).Int("rank", rank).
		Int("max_iter", maxIter).Float64("tol", tol).Int("workers", workers).
		Msg("fitting")

	opts := wpca.DefaultOptions()
	opts.MaxIterations = maxIter
	opts.Tolerance = tol
	opts.Workers = workers

	start := time.Now()
	res, err := wpca.Fit(x, xsd, rank, &opts)
	if err != nil {
		switch {
		case errors.Is(err, wpca.ErrMaxIterations):
			log.Error().Err(err).Msg("solver did not converge; no model produced")
		default:
			log.Error().Err(err).Msg("fit failed")
		}

		return err
	}

	log.Info().
		Int("iterations", res.Iterations).
		Float64("ssq", res.Ssq).
		Dur("elapsed", time.Since(start)).
		Msg("converged")

	for _, out := range []struct {
		suffix string
		m      mat.Matrix
	}{
		{"u", res.U},
		{"s", res.S},
		{"v", res.V},
	} {
		path := fmt.Sprintf("%s.%s.csv", outPrefix, out.suffix)
		if err = matcsv.WriteDense(path, out.m); err != nil {
			log.Error().Err(err).Str("path", path).Msg("writing output")

			return err
		}
		log.Info().Str("path", path).Msg("wrote")
	}

	return nil
}
