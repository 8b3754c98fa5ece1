// Package artifact loads the persisted sequence model and scalers the
// service was trained with, and runs the in-process forward pass.
// Artifacts are plain JSON exports of the training run; they are
// immutable for the life of a deployment.
package artifact

import (
	"fmt"
)

// Scaler is a fitted per-column standard scaler: transform maps x to
// (x-mean)/scale, inverse maps back. The parameters come from training
// time and are never re-fit here.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

func (s *Scaler) validate() error {
	if len(s.Mean) == 0 {
		return fmt.Errorf("scaler has no columns")
	}
	if len(s.Mean) != len(s.Scale) {
		return fmt.Errorf("scaler mean/scale length mismatch: %d vs %d", len(s.Mean), len(s.Scale))
	}
	for i, v := range s.Scale {
		if v == 0 {
			return fmt.Errorf("scaler column %d has zero scale", i)
		}
	}
	return nil
}

// Columns returns the number of columns the scaler was fit on.
func (s *Scaler) Columns() int { return len(s.Mean) }

// Transform normalizes each row per column with the persisted
// parameters. The input is not mutated.
func (s *Scaler) Transform(rows [][]float64) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) != len(s.Mean) {
			return nil, fmt.Errorf("row %d has %d columns, scaler expects %d", i, len(row), len(s.Mean))
		}
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = (v - s.Mean[j]) / s.Scale[j]
		}
		out[i] = scaled
	}
	return out, nil
}

// Inverse maps a scaled scalar back to original units using the first
// column's parameters. Target scalers are fit on a single column.
func (s *Scaler) Inverse(v float64) float64 {
	return v*s.Scale[0] + s.Mean[0]
}
