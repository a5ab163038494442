package eval

import (
	"tictac-engine/pkg/game"

	"golang.org/x/exp/rand"
)

// ScoreClamp bounds evaluator output so it can never collide with the
// search terminal sentinels (±100 adjusted by depth).
const ScoreClamp = 90

type EvaluationService struct {
	weights Weights
	noise   float64
	rnd     *rand.Rand
}

type Option func(*EvaluationService)

// WithNoise adds a bounded uniform perturbation in [-amplitude, amplitude]
// to each score, emulating a weaker player. The perturbed score is clamped
// again so it stays clear of terminal sentinel values.
func WithNoise(amplitude float64, seed uint64) Option {
	return func(e *EvaluationService) {
		if amplitude > 0 {
			e.noise = amplitude
			e.rnd = rand.New(rand.NewSource(seed))
		}
	}
}

func NewEvaluationService(w Weights, options ...Option) *EvaluationService {
	var e = &EvaluationService{weights: w}
	for _, option := range options {
		option(e)
	}
	return e
}

// SetWeights substitutes the active weight set; the next Evaluate call
// reads the new value.
func (e *EvaluationService) SetWeights(w Weights) {
	e.weights = w
}

func (e *EvaluationService) Weights() Weights {
	return e.weights
}

// Evaluate scores a non-terminal board for side as bias + Σ w·f over the
// perspective-adjusted dataset-format features, clamped to [-ScoreClamp, ScoreClamp].
func (e *EvaluationService) Evaluate(b game.Board, side game.Mark) float64 {
	var fv = ExtractFor(b, side)
	var score = e.weights.Bias
	for i := 0; i < FeatureSize; i++ {
		score += e.weights.Coeffs[i] * fv[i]
	}
	score = clamp(score)
	if e.noise > 0 {
		score = clamp(score + (e.rnd.Float64()*2-1)*e.noise)
	}
	return score
}

func clamp(score float64) float64 {
	if score > ScoreClamp {
		return ScoreClamp
	}
	if score < -ScoreClamp {
		return -ScoreClamp
	}
	return score
}
