package eval

import (
	"tictac-engine/pkg/game"
)

// Features describes a board from the evaluated player's own perspective,
// unlike the dataset-format extractor which is anchored to X. It feeds the
// classical heuristic and the non-linear evaluator.
type Features struct {
	OwnMarks      int
	OppMarks      int
	OwnTwoInRow   int
	OppTwoInRow   int
	OwnOneInRow   int
	OppOneInRow   int
	CenterControl int // 1 own, -1 opponent, 0 empty
	OwnCorners    int
	OppCorners    int
}

// InputSize is the length of the numeric vector produced by Vector.
const InputSize = 9

func (f Features) Vector() []float64 {
	return []float64{
		float64(f.OwnMarks),
		float64(f.OppMarks),
		float64(f.OwnTwoInRow),
		float64(f.OppTwoInRow),
		float64(f.OwnOneInRow),
		float64(f.OppOneInRow),
		float64(f.CenterControl),
		float64(f.OwnCorners),
		float64(f.OppCorners),
	}
}

var corners = [4]int{0, 2, 6, 8}

// Extract computes symmetric features for side. A two-in-a-row line holds
// two own marks and one empty cell; a one-in-a-row line holds one own mark
// and two empty cells.
func Extract(b game.Board, side game.Mark) Features {
	var f Features
	var opp = side.Opponent()

	for i := range b {
		switch b[i] {
		case side:
			f.OwnMarks++
		case opp:
			f.OppMarks++
		}
	}

	for _, line := range game.WinLines() {
		var own, theirs, empty int
		for _, idx := range line {
			switch b[idx] {
			case side:
				own++
			case opp:
				theirs++
			default:
				empty++
			}
		}
		switch {
		case own == 2 && empty == 1:
			f.OwnTwoInRow++
		case theirs == 2 && empty == 1:
			f.OppTwoInRow++
		case own == 1 && empty == 2:
			f.OwnOneInRow++
		case theirs == 1 && empty == 2:
			f.OppOneInRow++
		}
	}

	switch b[4] {
	case side:
		f.CenterControl = 1
	case opp:
		f.CenterControl = -1
	}

	for _, c := range corners {
		switch b[c] {
		case side:
			f.OwnCorners++
		case opp:
			f.OppCorners++
		}
	}
	return f
}
