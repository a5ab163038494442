package ml

import (
	"fmt"
	"math"
)

type CVResult struct {
	FoldAccuracies []float64
	Mean           float64
	StdDev         float64
}

// CrossValidate partitions the samples into k contiguous folds, trains on
// k-1 folds and tests on the held-out one.
func CrossValidate(features [][]float64, labels []float64, k int, cfg Config) (CVResult, error) {
	if k < 2 {
		return CVResult{}, fmt.Errorf("cross validate: k=%v, want at least 2", k)
	}
	if len(features) < k {
		return CVResult{}, fmt.Errorf("cross validate: %v samples for %v folds", len(features), k)
	}
	if len(features) != len(labels) {
		return CVResult{}, fmt.Errorf("cross validate: %v feature rows, %v labels", len(features), len(labels))
	}

	var n = len(features)
	var result CVResult
	for fold := 0; fold < k; fold++ {
		var lo = fold * n / k
		var hi = (fold + 1) * n / k

		var trainFeatures = make([][]float64, 0, n-(hi-lo))
		var trainLabels = make([]float64, 0, n-(hi-lo))
		trainFeatures = append(trainFeatures, features[:lo]...)
		trainFeatures = append(trainFeatures, features[hi:]...)
		trainLabels = append(trainLabels, labels[:lo]...)
		trainLabels = append(trainLabels, labels[hi:]...)

		var trained, err = Train(trainFeatures, trainLabels, cfg)
		if err != nil {
			return CVResult{}, err
		}
		var accuracy = Accuracy(features[lo:hi], labels[lo:hi], trained.Weights, trained.Bias)
		result.FoldAccuracies = append(result.FoldAccuracies, accuracy)
	}

	for _, a := range result.FoldAccuracies {
		result.Mean += a
	}
	result.Mean /= float64(k)
	var variance float64
	for _, a := range result.FoldAccuracies {
		var d = a - result.Mean
		variance += d * d
	}
	result.StdDev = math.Sqrt(variance / float64(k))
	return result, nil
}
