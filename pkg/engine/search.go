package engine

import (
	"math"
	"sort"

	"tictac-engine/pkg/game"
)

// FindBestMove runs a depth-limited alpha-beta search maximizing for side.
// Every root move is searched with a full window so the ranked list carries
// exact values for display; pruning applies below the root. Ties at the
// root break toward the first move in ascending board-index order.
func (e *Engine) FindBestMove(b game.Board, side game.Mark) (SearchResult, error) {
	var moves = b.LegalMoves()
	if len(moves) == 0 {
		return SearchResult{}, ErrNoLegalMoves
	}

	var result = SearchResult{
		BestMove:  moves[0],
		BestValue: math.Inf(-1),
	}
	for _, move := range moves {
		var child, err = b.ApplyMove(move, side)
		if err != nil {
			return SearchResult{}, err
		}
		var value = e.alphaBeta(child, side, 1, math.Inf(-1), math.Inf(1), false)
		result.MoveValues = append(result.MoveValues, MoveValue{Move: move, Value: value})
		if value > result.BestValue {
			result.BestValue = value
			result.BestMove = move
		}
	}

	sort.SliceStable(result.MoveValues, func(i, j int) bool {
		return result.MoveValues[i].Value > result.MoveValues[j].Value
	})
	return result, nil
}

// alphaBeta explores one ply per call. Terminal scoring overrides the
// evaluator: a win for side scores WinValue-depth, a loss depth-WinValue,
// a draw 0. Non-terminal nodes at the depth limit go to the evaluator.
func (e *Engine) alphaBeta(b game.Board, side game.Mark, depth int, alpha, beta float64, maximizing bool) float64 {
	var outcome = b.Outcome()
	switch outcome.Status {
	case game.Win:
		if outcome.Winner == side {
			return WinValue - float64(depth)
		}
		return float64(depth) - WinValue
	case game.Draw:
		return 0
	}
	if depth >= e.maxDepth {
		return e.evaluator.Evaluate(b, side)
	}

	var mover = side
	if !maximizing {
		mover = side.Opponent()
	}

	if maximizing {
		var best = math.Inf(-1)
		for _, move := range b.LegalMoves() {
			var child, _ = b.ApplyMove(move, mover)
			var value = e.alphaBeta(child, side, depth+1, alpha, beta, false)
			if value > best {
				best = value
			}
			if best > alpha {
				alpha = best
			}
			if beta <= alpha {
				break
			}
		}
		return best
	}

	var best = math.Inf(1)
	for _, move := range b.LegalMoves() {
		var child, _ = b.ApplyMove(move, mover)
		var value = e.alphaBeta(child, side, depth+1, alpha, beta, true)
		if value < best {
			best = value
		}
		if best < beta {
			beta = best
		}
		if beta <= alpha {
			break
		}
	}
	return best
}
