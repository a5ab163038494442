package dataset

// Normalization records the per-column range used by min-max scaling so
// original values can be reconstructed.
type Normalization struct {
	Mins []float64
	Maxs []float64
}

// Normalize min-max scales every feature column into [0,1]. A zero-range
// column maps to 0 for all samples. The input rows are not modified.
func Normalize(features [][]float64) ([][]float64, Normalization) {
	if len(features) == 0 {
		return nil, Normalization{}
	}
	var cols = len(features[0])
	var norm = Normalization{
		Mins: make([]float64, cols),
		Maxs: make([]float64, cols),
	}
	for j := 0; j < cols; j++ {
		norm.Mins[j] = features[0][j]
		norm.Maxs[j] = features[0][j]
	}
	for _, row := range features {
		for j, v := range row {
			if v < norm.Mins[j] {
				norm.Mins[j] = v
			}
			if v > norm.Maxs[j] {
				norm.Maxs[j] = v
			}
		}
	}

	var result = make([][]float64, len(features))
	for i, row := range features {
		result[i] = norm.Apply(row)
	}
	return result, norm
}

// Apply scales one row with the recorded ranges.
func (n Normalization) Apply(row []float64) []float64 {
	var result = make([]float64, len(row))
	for j, v := range row {
		var span = n.Maxs[j] - n.Mins[j]
		if span == 0 {
			result[j] = 0
			continue
		}
		result[j] = (v - n.Mins[j]) / span
	}
	return result
}

// Restore reconstructs original values from normalized ones. Zero-range
// columns restore to their recorded constant value.
func (n Normalization) Restore(row []float64) []float64 {
	var result = make([]float64, len(row))
	for j, v := range row {
		var span = n.Maxs[j] - n.Mins[j]
		result[j] = n.Mins[j] + v*span
	}
	return result
}
