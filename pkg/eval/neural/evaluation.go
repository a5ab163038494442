package eval

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	classic "tictac-engine/pkg/eval/classic"
	"tictac-engine/pkg/game"

	deep "github.com/patrikeh/go-deep"
	"github.com/patrikeh/go-deep/training"
)

// scoreScale maps the network's regression output, trained against ±1
// labels, onto the evaluator score range.
const scoreScale = 90

type Config struct {
	HiddenLayers []int
	Weights      [][][]float64
}

func DefaultConfig() Config {
	return Config{HiddenLayers: []int{16, 8}}
}

// EvaluationService scores boards with a small feed-forward network over
// the symmetric feature vector.
type EvaluationService struct {
	network *deep.Neural
	config  Config
}

func NewEvaluationService(config Config) *EvaluationService {
	var layout = append([]int{}, config.HiddenLayers...)
	layout = append(layout, 1)

	var network = deep.NewNeural(&deep.Config{
		Inputs:     classic.InputSize,
		Layout:     layout,
		Activation: deep.ActivationReLU,
		Mode:       deep.ModeRegression,
		Weight:     deep.NewNormal(0.0, 0.1),
		Bias:       true,
	})
	if config.Weights != nil {
		network.ApplyWeights(config.Weights)
	}
	return &EvaluationService{network: network, config: config}
}

func (e *EvaluationService) Evaluate(b game.Board, side game.Mark) float64 {
	var inputs = classic.Extract(b, side).Vector()
	var score = e.network.Predict(inputs)[0] * scoreScale
	if score > scoreScale {
		return scoreScale
	}
	if score < -scoreScale {
		return -scoreScale
	}
	return score
}

// Examples builds a training set from final boards and their ±1 labels,
// from X's point of view.
func Examples(boards []game.Board, labels []float64) training.Examples {
	var examples training.Examples
	for i, b := range boards {
		examples = append(examples, training.Example{
			Input:    classic.Extract(b, game.X).Vector(),
			Response: []float64{labels[i]},
		})
	}
	return examples
}

// Fit trains the network in place with plain SGD.
func (e *EvaluationService) Fit(examples training.Examples, iterations int, learningRate float64) error {
	if len(examples) == 0 {
		return fmt.Errorf("neural fit: no examples")
	}
	examples.Shuffle()
	var trainer = training.NewTrainer(training.NewSGD(learningRate, 0.5, 0.0, false), 0)
	trainer.Train(e.network, examples, nil, iterations)
	e.config.Weights = e.network.Dump().Weights
	return nil
}

// Save persists the network weights as JSON.
func (e *EvaluationService) Save(out io.Writer) error {
	var snap = Config{
		HiddenLayers: e.config.HiddenLayers,
		Weights:      e.network.Dump().Weights,
	}
	var enc = json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(&snap)
}

func (e *EvaluationService) SaveFile(path string) error {
	var f, err = os.Create(path)
	if err != nil {
		return fmt.Errorf("save network: %w", err)
	}
	defer f.Close()
	return e.Save(f)
}

func LoadConfig(in io.Reader) (Config, error) {
	var config Config
	if err := json.NewDecoder(in).Decode(&config); err != nil {
		return Config{}, fmt.Errorf("load network: %w", err)
	}
	if len(config.HiddenLayers) == 0 {
		return Config{}, fmt.Errorf("load network: no layer layout")
	}
	return config, nil
}

func LoadConfigFile(path string) (Config, error) {
	var f, err = os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("load network: %w", err)
	}
	defer f.Close()
	return LoadConfig(f)
}
