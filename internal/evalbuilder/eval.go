package evalbuilder

import (
	"fmt"

	"tictac-engine/pkg/engine"
	classic "tictac-engine/pkg/eval/classic"
	linear "tictac-engine/pkg/eval/linear"
	neural "tictac-engine/pkg/eval/neural"
)

// Build maps an evaluator key to a ready service. modelPath optionally
// points at a persisted snapshot for the linear and neural families.
func Build(key, modelPath string) (engine.Evaluator, error) {
	switch key {
	case "", "classic":
		return classic.NewEvaluationService(), nil
	case "linear":
		var weights = linear.DefaultWeights()
		if modelPath != "" {
			var loaded, err = linear.LoadWeightsFile(modelPath)
			if err != nil {
				return nil, err
			}
			weights = loaded
		}
		return linear.NewEvaluationService(weights), nil
	case "neural":
		var config = neural.DefaultConfig()
		if modelPath != "" {
			var loaded, err = neural.LoadConfigFile(modelPath)
			if err != nil {
				return nil, err
			}
			config = loaded
		}
		return neural.NewEvaluationService(config), nil
	}
	return nil, fmt.Errorf("bad eval %v", key)
}
