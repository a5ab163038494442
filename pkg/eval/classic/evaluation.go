package eval

import (
	"tictac-engine/pkg/game"
)

// Heuristic weights. Relative order matters more than the magnitudes:
// terminal > opponent immediate win > own immediate win > fork > center >
// corner > one-in-a-row > edge.
const (
	terminalValue  = 500
	oppThreatValue = 45
	ownThreatValue = 35
	forkValue      = 20
	centerValue    = 8
	cornerValue    = 4
	oneInRowValue  = 2
	edgeValue      = 1

	scoreClamp = 90
)

var edges = [4]int{1, 3, 5, 7}

type EvaluationService struct{}

func NewEvaluationService() *EvaluationService {
	return &EvaluationService{}
}

// Evaluate statically scores a board for side. Terminal boards return a
// fixed magnitude dwarfing every heuristic term; non-terminal scores are
// clamped to [-90, 90] so that inside a search they can never outrank the
// terminal sentinels.
func (e *EvaluationService) Evaluate(b game.Board, side game.Mark) float64 {
	var outcome = b.Outcome()
	if outcome.Status == game.Win {
		if outcome.Winner == side {
			return terminalValue
		}
		return -terminalValue
	}
	if outcome.Status == game.Draw {
		return 0
	}

	var f = Extract(b, side)
	var score float64

	score += float64(f.OwnTwoInRow) * ownThreatValue
	score -= float64(f.OppTwoInRow) * oppThreatValue
	if f.OwnTwoInRow >= 2 {
		score += forkValue
	}
	if f.OppTwoInRow >= 2 {
		score -= forkValue
	}

	score += float64(f.CenterControl) * centerValue
	score += float64(f.OwnCorners-f.OppCorners) * cornerValue
	score += float64(f.OwnOneInRow-f.OppOneInRow) * oneInRowValue

	for _, idx := range edges {
		switch b[idx] {
		case side:
			score += edgeValue
		case side.Opponent():
			score -= edgeValue
		}
	}

	if score > scoreClamp {
		return scoreClamp
	}
	if score < -scoreClamp {
		return -scoreClamp
	}
	return score
}
