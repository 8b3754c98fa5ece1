package artifact

import (
	"fmt"
	"math"
)

// Model is the persisted sequence model: one LSTM layer followed by a
// single-unit dense head, exported from training as JSON weight
// matrices. Inference is a plain forward pass with no randomness, so
// identical inputs always produce identical forecasts.
type Model struct {
	Arch     string       `json:"arch"`
	Steps    int          `json:"steps"`
	Features int          `json:"features"`
	Units    int          `json:"units"`
	LSTM     lstmWeights  `json:"lstm"`
	Dense    denseWeights `json:"dense"`
}

// lstmWeights follow the usual gate packing: the second dimension of
// the kernels and the bias stack the input, forget, cell, and output
// gates in that order, each units wide.
type lstmWeights struct {
	InputKernel     [][]float64 `json:"input_kernel"`     // features x 4*units
	RecurrentKernel [][]float64 `json:"recurrent_kernel"` // units x 4*units
	Bias            []float64   `json:"bias"`             // 4*units
}

type denseWeights struct {
	Kernel []float64 `json:"kernel"` // units
	Bias   float64   `json:"bias"`
}

func (m *Model) validate() error {
	if m.Arch != "lstm" {
		return fmt.Errorf("unsupported architecture %q", m.Arch)
	}
	if m.Steps <= 0 || m.Features <= 0 || m.Units <= 0 {
		return fmt.Errorf("non-positive dimensions: steps=%d features=%d units=%d", m.Steps, m.Features, m.Units)
	}
	gates := 4 * m.Units
	if len(m.LSTM.InputKernel) != m.Features {
		return fmt.Errorf("input kernel has %d rows, want %d", len(m.LSTM.InputKernel), m.Features)
	}
	for i, row := range m.LSTM.InputKernel {
		if len(row) != gates {
			return fmt.Errorf("input kernel row %d has %d columns, want %d", i, len(row), gates)
		}
	}
	if len(m.LSTM.RecurrentKernel) != m.Units {
		return fmt.Errorf("recurrent kernel has %d rows, want %d", len(m.LSTM.RecurrentKernel), m.Units)
	}
	for i, row := range m.LSTM.RecurrentKernel {
		if len(row) != gates {
			return fmt.Errorf("recurrent kernel row %d has %d columns, want %d", i, len(row), gates)
		}
	}
	if len(m.LSTM.Bias) != gates {
		return fmt.Errorf("lstm bias has %d values, want %d", len(m.LSTM.Bias), gates)
	}
	if len(m.Dense.Kernel) != m.Units {
		return fmt.Errorf("dense kernel has %d values, want %d", len(m.Dense.Kernel), m.Units)
	}
	return nil
}

// StepCount and FeatureCount accessors for the model input contract.

func (m *Model) StepCount() int    { return m.Steps }
func (m *Model) FeatureCount() int { return m.Features }

// Predict runs one forward pass over a scaled window of shape
// steps x features and returns the scaled scalar forecast.
func (m *Model) Predict(window [][]float64) (float64, error) {
	if len(window) != m.Steps {
		return 0, fmt.Errorf("window has %d steps, model expects %d", len(window), m.Steps)
	}
	for i, row := range window {
		if len(row) != m.Features {
			return 0, fmt.Errorf("window row %d has %d features, model expects %d", i, len(row), m.Features)
		}
	}

	u := m.Units
	h := make([]float64, u)
	c := make([]float64, u)
	z := make([]float64, 4*u)

	for _, x := range window {
		for k := range z {
			z[k] = m.LSTM.Bias[k]
		}
		for j, xv := range x {
			if xv == 0 {
				continue
			}
			row := m.LSTM.InputKernel[j]
			for k := range z {
				z[k] += xv * row[k]
			}
		}
		for j, hv := range h {
			if hv == 0 {
				continue
			}
			row := m.LSTM.RecurrentKernel[j]
			for k := range z {
				z[k] += hv * row[k]
			}
		}

		for k := 0; k < u; k++ {
			in := sigmoid(z[k])
			forget := sigmoid(z[u+k])
			cand := math.Tanh(z[2*u+k])
			out := sigmoid(z[3*u+k])

			c[k] = forget*c[k] + in*cand
			h[k] = out * math.Tanh(c[k])
		}
	}

	y := m.Dense.Bias
	for k, hv := range h {
		y += hv * m.Dense.Kernel[k]
	}
	return y, nil
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
