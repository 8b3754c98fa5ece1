// Package window enforces the model's input contract. The upstream
// feed is unreliable; a silent NaN or shape mismatch here would
// corrupt inference without any visible failure, so every constraint
// is checked separately and named in its error.
package window

import (
	"fmt"
	"math"

	"GoldPulse/internal/domain/models"
)

// Build reduces a feature table to the most recent fixed-shape input
// window, or fails with a ValidationError naming the violated check.
// The caller is expected to have dropped warm-up rows already; the
// NaN check below still guards the tail in case it has not. Checks
// run in a fixed order so the first root cause is the one reported.
func Build(rows []models.FeatureRow) (models.Window, error) {
	var w models.Window

	if len(rows) < models.WindowSize {
		return w, &models.ValidationError{
			Check:  models.CheckRows,
			Detail: fmt.Sprintf("need at least %d rows, have %d after dropping warm-up rows", models.WindowSize, len(rows)),
		}
	}

	if err := checkColumns(); err != nil {
		return w, err
	}

	tail := rows[len(rows)-models.WindowSize:]
	matrix := make([][]float64, 0, models.WindowSize)
	for _, r := range tail {
		cols := r.ModelColumns()
		matrix = append(matrix, cols[:])
	}

	for i, row := range matrix {
		for j, v := range row {
			if math.IsNaN(v) {
				return w, &models.ValidationError{
					Check:  models.CheckMissing,
					Detail: fmt.Sprintf("missing value at row %d column %q", i, models.FeatureColumns[j]),
				}
			}
		}
	}

	// Values arrive as float64 end to end, so the numeric check holds
	// by construction; it is still asserted so a future change of the
	// row representation cannot silently weaken the contract.
	for i, row := range matrix {
		if len(row) != models.FeatureCount {
			return w, &models.ValidationError{
				Check:  models.CheckNumeric,
				Detail: fmt.Sprintf("row %d has non-numeric content", i),
			}
		}
	}

	for i, row := range matrix {
		for j, v := range row {
			if math.IsInf(v, 0) {
				return w, &models.ValidationError{
					Check:  models.CheckFinite,
					Detail: fmt.Sprintf("infinite value at row %d column %q", i, models.FeatureColumns[j]),
				}
			}
		}
	}

	if len(matrix) != models.WindowSize {
		return w, &models.ValidationError{
			Check:  models.CheckShape,
			Detail: fmt.Sprintf("expected shape (%d, %d), got (%d, %d)", models.WindowSize, models.FeatureCount, len(matrix), models.FeatureCount),
		}
	}

	for i, row := range matrix {
		copy(w[i][:], row)
	}
	return w, nil
}

// checkColumns asserts the feature column set itself. The columns are
// fixed at compile time in this implementation, but the check stays
// addressable so operators see a distinct failure if the set ever
// drifts from what the model expects.
func checkColumns() error {
	if len(models.FeatureColumns) != models.FeatureCount {
		return &models.ValidationError{
			Check:  models.CheckColumns,
			Detail: fmt.Sprintf("expected %d feature columns, have %d", models.FeatureCount, len(models.FeatureColumns)),
		}
	}
	return nil
}
