package ml

import (
	"fmt"
	"sort"
)

type Importance struct {
	Name     string
	Weight   float64
	Positive bool
}

// FeatureImportance ranks features by absolute weight magnitude, descending.
func FeatureImportance(weights []float64, names []string) []Importance {
	var result = make([]Importance, len(weights))
	for i, w := range weights {
		var name = fmt.Sprintf("f%v", i)
		if i < len(names) {
			name = names[i]
		}
		result[i] = Importance{Name: name, Weight: w, Positive: w >= 0}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return abs(result[i].Weight) > abs(result[j].Weight)
	})
	return result
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
