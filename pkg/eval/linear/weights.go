package eval

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Weights is a caller-owned value: evaluators hold the set they were given
// and callers substitute a new set explicitly, there is no process-wide
// weight state.
type Weights struct {
	Bias   float64
	Coeffs [FeatureSize]float64
}

// snapshot is the persisted model layout, kept stable for round-tripping
// with external tooling.
type snapshot struct {
	Weights      []float64 `json:"weights"`
	Bias         float64   `json:"bias"`
	FeatureNames []string  `json:"featureNames"`
}

// DefaultWeights favors own material and threats and penalizes opponent
// threats, roughly matching what training on balanced game records yields.
func DefaultWeights() Weights {
	return Weights{
		Bias: 0,
		Coeffs: [FeatureSize]float64{
			fXMarks:   5,
			fOMarks:   -5,
			fXThreats: 20,
			fOThreats: -25,
			fCenter:   10,
			fCorners:  4,
		},
	}
}

func (w Weights) Save(out io.Writer) error {
	var snap = snapshot{
		Weights:      w.Coeffs[:],
		Bias:         w.Bias,
		FeatureNames: FeatureNames(),
	}
	var enc = json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(&snap)
}

func (w Weights) SaveFile(path string) error {
	var f, err = os.Create(path)
	if err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	defer f.Close()
	return w.Save(f)
}

func LoadWeights(in io.Reader) (Weights, error) {
	var snap snapshot
	if err := json.NewDecoder(in).Decode(&snap); err != nil {
		return Weights{}, fmt.Errorf("load model: %w", err)
	}
	if len(snap.Weights) != FeatureSize {
		return Weights{}, fmt.Errorf("load model: %v weights, want %v", len(snap.Weights), FeatureSize)
	}
	var w = Weights{Bias: snap.Bias}
	copy(w.Coeffs[:], snap.Weights)
	return w, nil
}

func LoadWeightsFile(path string) (Weights, error) {
	var f, err = os.Open(path)
	if err != nil {
		return Weights{}, fmt.Errorf("load model: %w", err)
	}
	defer f.Close()
	return LoadWeights(f)
}
