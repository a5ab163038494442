package ml

import (
	"errors"
	"fmt"
	"log"
)

// Config drives full-batch gradient descent on mean-squared error with L2
// regularization on all weights except the bias.
type Config struct {
	LearningRate float64
	Epochs       int
	L2Lambda     float64
	// AccuracyEvery controls how often a classification accuracy snapshot
	// lands in the history; 0 means every 50 epochs.
	AccuracyEvery int
	// Verbose mirrors progress to the log the way the engine tuners do.
	Verbose bool
}

type AccuracyPoint struct {
	Epoch    int
	Accuracy float64
}

type History struct {
	Losses     []float64
	Accuracies []AccuracyPoint
}

type Result struct {
	Weights []float64
	Bias    float64
	History History
}

var ErrNoSamples = errors.New("no training samples")

// Train fits a linear model prediction = bias + Σ w·x to labels in {+1,-1}.
// Per epoch: predictions for all samples, accumulated MSE gradient, then
// weight -= lr*(gradient/m + l2*weight) and bias -= lr*(gradient/m).
func Train(features [][]float64, labels []float64, cfg Config) (Result, error) {
	if len(features) == 0 {
		return Result{}, ErrNoSamples
	}
	if len(features) != len(labels) {
		return Result{}, fmt.Errorf("train: %v feature rows, %v labels", len(features), len(labels))
	}
	var inputSize = len(features[0])
	for i := range features {
		if len(features[i]) != inputSize {
			return Result{}, fmt.Errorf("train: row %v has %v features, want %v", i, len(features[i]), inputSize)
		}
	}
	var accuracyEvery = cfg.AccuracyEvery
	if accuracyEvery <= 0 {
		accuracyEvery = 50
	}

	var m = float64(len(features))
	var weights = make([]float64, inputSize)
	var bias float64
	var gradients = make([]float64, inputSize)
	var history History

	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		for j := range gradients {
			gradients[j] = 0
		}
		var biasGradient, loss float64

		for i, x := range features {
			var residual = Predict(x, weights, bias) - labels[i]
			loss += residual * residual
			for j := range x {
				gradients[j] += residual * x[j]
			}
			biasGradient += residual
		}

		for j := range weights {
			weights[j] -= cfg.LearningRate * (gradients[j]/m + cfg.L2Lambda*weights[j])
		}
		bias -= cfg.LearningRate * (biasGradient / m)

		history.Losses = append(history.Losses, loss/m)
		if epoch%accuracyEvery == 0 || epoch == cfg.Epochs {
			var accuracy = Accuracy(features, labels, weights, bias)
			history.Accuracies = append(history.Accuracies, AccuracyPoint{Epoch: epoch, Accuracy: accuracy})
			if cfg.Verbose {
				log.Printf("epoch %v loss=%.6f accuracy=%.2f%%", epoch, loss/m, accuracy*100)
			}
		}
	}

	return Result{Weights: weights, Bias: bias, History: history}, nil
}

// Predict is the linear model forward pass.
func Predict(x, weights []float64, bias float64) float64 {
	var sum = bias
	for j := range x {
		sum += weights[j] * x[j]
	}
	return sum
}

// Classify thresholds a prediction at zero; exactly 0 counts as positive.
func Classify(x, weights []float64, bias float64) float64 {
	if Predict(x, weights, bias) >= 0 {
		return 1
	}
	return -1
}

// Accuracy is the fraction of samples whose sign-thresholded prediction
// matches the label.
func Accuracy(features [][]float64, labels []float64, weights []float64, bias float64) float64 {
	if len(features) == 0 {
		return 0
	}
	var correct int
	for i, x := range features {
		if Classify(x, weights, bias) == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(features))
}
