// Package matcsv reads and writes dense matrices as CSV, with NaN-aware
// missing cells.
//
// Cell grammar: any float accepted by strconv.ParseFloat, plus the missing
// markers "" (empty cell), "NA" and "NaN" (case-insensitive), all of which
// parse as NaN — the missing marker the wpca solver expects in its
// standard-deviation input. Rows must be rectangular.
package matcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrEmptyFile indicates the CSV had no rows at all.
	ErrEmptyFile = errors.New("matcsv: empty file")

	// ErrRaggedRows indicates rows of unequal length.
	ErrRaggedRows = errors.New("matcsv: rows have unequal length")

	// ErrBadCell indicates a cell that is neither a float nor a missing
	// marker ("", "NA", "NaN").
	ErrBadCell = errors.New("matcsv: cell is not a number or missing marker")
)

// ReadDense loads a rectangular CSV file into a freshly allocated
// *mat.Dense. Missing cells become NaN.
func ReadDense(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("matcsv: open: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // raggedness is reported with our own sentinel
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("matcsv: parse: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}

	rows, cols := len(records), len(records[0])
	if cols == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}
	m := mat.NewDense(rows, cols, nil)
	for i, rec := range records {
		if len(rec) != cols {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", i, len(rec), cols, ErrRaggedRows)
		}
		for j, cell := range rec {
			v, cellErr := parseCell(cell)
			if cellErr != nil {
				return nil, fmt.Errorf("row %d col %d %q: %w", i, j, cell, ErrBadCell)
			}
			m.Set(i, j, v)
		}
	}

	return m, nil
}

// WriteDense writes m as CSV with %g formatting; NaN cells are written as
// "NaN" so a round trip preserves missing markers.
func WriteDense(path string, m mat.Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("matcsv: create: %w", err)
	}

	w := csv.NewWriter(f)
	rows, cols := m.Dims()
	rec := make([]string, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			rec[j] = strconv.FormatFloat(m.At(i, j), 'g', -1, 64)
		}
		if err = w.Write(rec); err != nil {
			f.Close()

			return fmt.Errorf("matcsv: write row %d: %w", i, err)
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		f.Close()

		return fmt.Errorf("matcsv: flush: %w", err)
	}

	return f.Close()
}

// parseCell maps a CSV cell to a float64, treating "", "NA" and "NaN"
// (case-insensitive) as the NaN missing marker.
func parseCell(cell string) (float64, error) {
	s := strings.TrimSpace(cell)
	switch strings.ToUpper(s) {
	case "", "NA", "NAN":
		return math.NaN(), nil
	}

	return strconv.ParseFloat(s, 64)
}
