package eval

import (
	"tictac-engine/pkg/game"
)

// Dataset-format features, always computed from X's absolute perspective.
// The trainer and the persisted model both use this layout, so the order is
// part of the external dataset contract.
const (
	fXMarks = iota
	fOMarks
	fXThreats
	fOThreats
	fCenter
	fCorners
	FeatureSize
)

var featureNames = [FeatureSize]string{
	fXMarks:   "xMarks",
	fOMarks:   "oMarks",
	fXThreats: "xThreats",
	fOThreats: "oThreats",
	fCenter:   "centerOwned",
	fCorners:  "cornersOwned",
}

// FeatureNames returns the dataset column names in feature order.
func FeatureNames() []string {
	var result = make([]string, FeatureSize)
	copy(result, featureNames[:])
	return result
}

type FeatureVector [FeatureSize]float64

func (fv FeatureVector) Slice() []float64 {
	var result = make([]float64, FeatureSize)
	copy(result, fv[:])
	return result
}

var corners = [4]int{0, 2, 6, 8}

// Extract computes the dataset-format vector from X's perspective:
// [xMarks, oMarks, xThreats, oThreats, centerOwnedByX, cornersOwnedByX].
func Extract(b game.Board) FeatureVector {
	return extractFor(b, game.X)
}

// ExtractFor computes the perspective-adjusted vector for side: the two mark
// counts and the two almost-won-line counts swap roles, center and corner
// ownership are read directly off the board for the evaluated side.
func ExtractFor(b game.Board, side game.Mark) FeatureVector {
	return extractFor(b, side)
}

func extractFor(b game.Board, side game.Mark) FeatureVector {
	var fv FeatureVector
	var opp = side.Opponent()

	for i := range b {
		switch b[i] {
		case side:
			fv[fXMarks]++
		case opp:
			fv[fOMarks]++
		}
	}

	fv[fXThreats] = float64(almostWonLines(b, side))
	fv[fOThreats] = float64(almostWonLines(b, opp))

	if b[4] == side {
		fv[fCenter] = 1
	}
	for _, c := range corners {
		if b[c] == side {
			fv[fCorners]++
		}
	}
	return fv
}

// almostWonLines counts lines holding two of mark and one empty cell.
func almostWonLines(b game.Board, mark game.Mark) int {
	var count int
	for _, line := range game.WinLines() {
		var own, empty int
		for _, idx := range line {
			switch b[idx] {
			case mark:
				own++
			case game.Empty:
				empty++
			}
		}
		if own == 2 && empty == 1 {
			count++
		}
	}
	return count
}
