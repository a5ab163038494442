package engine

import (
	"math"
	"testing"

	classic "tictac-engine/pkg/eval/classic"
	linear "tictac-engine/pkg/eval/linear"
	"tictac-engine/pkg/game"

	"github.com/stretchr/testify/require"
)

func TestFindBestMoveBlocksAndWins(t *testing.T) {
	// X threatens at 2, O completes its own row at 5. Index 5 must win for
	// any depth >= 1 because the child board is terminal.
	var b = game.MustParseBoard("XX. OO. ...")
	for depth := 1; depth <= MaxDepth; depth++ {
		var eng = NewEngine(classic.NewEvaluationService(), WithMaxDepth(depth))
		var result, err = eng.FindBestMove(b, game.O)
		require.NoError(t, err)
		require.Equal(t, game.Move(5), result.BestMove, "depth %v", depth)
		require.Equal(t, float64(WinValue-1), result.BestValue, "depth %v", depth)
	}
}

func TestFindBestMoveBlocksLoss(t *testing.T) {
	// O has no win of its own; X threatens the top row. O must block at 2.
	var b = game.MustParseBoard("XX. O.. ...")
	var eng = NewEngine(classic.NewEvaluationService())
	var result, err = eng.FindBestMove(b, game.O)
	require.NoError(t, err)
	require.Equal(t, game.Move(2), result.BestMove)

	// Every non-blocking move loses: X mates at depth 2.
	for _, mv := range result.MoveValues {
		if mv.Move != 2 {
			require.Equal(t, float64(2-WinValue), mv.Value, "move %v", mv.Move)
		}
	}
}

func TestFindBestMoveNoLegalMoves(t *testing.T) {
	var b = game.MustParseBoard("XOX XXO OXO")
	var eng = NewEngine(classic.NewEvaluationService())
	var _, err = eng.FindBestMove(b, game.X)
	require.ErrorIs(t, err, ErrNoLegalMoves)
}

func TestTieBreakFirstMove(t *testing.T) {
	// On an empty board at full depth every first move draws; the engine
	// must keep the first move encountered in ascending order.
	var eng = NewEngine(classic.NewEvaluationService())
	var result, err = eng.FindBestMove(game.Board{}, game.X)
	require.NoError(t, err)
	require.Equal(t, 0.0, result.BestValue)
	require.Equal(t, game.Move(0), result.BestMove)
	require.Len(t, result.MoveValues, 9)
	for i := 1; i < len(result.MoveValues); i++ {
		require.GreaterOrEqual(t, result.MoveValues[i-1].Value, result.MoveValues[i].Value,
			"ranked list must be sorted descending")
	}
}

// plainMinimax mirrors the search without pruning, as a reference result.
func plainMinimax(e *Engine, b game.Board, side game.Mark, depth int, maximizing bool) float64 {
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
	var best = math.Inf(-1)
	if !maximizing {
		best = math.Inf(1)
	}
	for _, move := range b.LegalMoves() {
		var child, _ = b.ApplyMove(move, mover)
		var value = plainMinimax(e, child, side, depth+1, !maximizing)
		if maximizing && value > best || !maximizing && value < best {
			best = value
		}
	}
	return best
}

func TestPruningPreservesMinimaxValues(t *testing.T) {
	var boards = []string{
		".........",
		"X........",
		"X...O....",
		"XO.X..O..",
		"XOX.O..X.",
		"XX. OO. ...",
		"X.O .X. O..",
	}
	var evaluators = []Evaluator{
		classic.NewEvaluationService(),
		linear.NewEvaluationService(linear.DefaultWeights()),
	}
	for _, s := range boards {
		var b = game.MustParseBoard(s)
		var side = sideToMove(b)
		for _, evaluator := range evaluators {
			for depth := 1; depth <= MaxDepth; depth++ {
				var eng = NewEngine(evaluator, WithMaxDepth(depth))
				var result, err = eng.FindBestMove(b, side)
				require.NoError(t, err)
				for _, mv := range result.MoveValues {
					var child, errApply = b.ApplyMove(mv.Move, side)
					require.NoError(t, errApply)
					var want = plainMinimax(eng, child, side, 1, false)
					require.Equal(t, want, mv.Value,
						"board %q depth %v move %v", s, depth, mv.Move)
				}
			}
		}
	}
}

// sideToMove assumes strict alternation with X first.
func sideToMove(b game.Board) game.Mark {
	var x, o int
	for i := range b {
		switch b[i] {
		case game.X:
			x++
		case game.O:
			o++
		}
	}
	if x > o {
		return game.O
	}
	return game.X
}

// Full-depth search from the empty board must never lose against any legal
// opponent sequence: walk every opponent reply, answering with the engine.
func TestFullDepthNeverLoses(t *testing.T) {
	var eng = NewEngine(classic.NewEvaluationService())

	var games, losses int
	var play func(b game.Board, aiSide, mover game.Mark)
	play = func(b game.Board, aiSide, mover game.Mark) {
		var outcome = b.Outcome()
		if outcome.Status != game.InProgress {
			games++
			if outcome.Status == game.Win && outcome.Winner != aiSide {
				losses++
				t.Errorf("AI (%v) lost:\n%v", aiSide, b)
			}
			return
		}
		if mover == aiSide {
			var result, err = eng.FindBestMove(b, aiSide)
			require.NoError(t, err)
			var child, _ = b.ApplyMove(result.BestMove, aiSide)
			play(child, aiSide, mover.Opponent())
			return
		}
		for _, move := range b.LegalMoves() {
			var child, _ = b.ApplyMove(move, mover)
			play(child, aiSide, mover.Opponent())
		}
	}

	play(game.Board{}, game.X, game.X)
	play(game.Board{}, game.O, game.X)
	require.Zero(t, losses)
	require.Greater(t, games, 100)
}

func TestDifficultyDepths(t *testing.T) {
	require.Less(t, Easy.Depth(), Normal.Depth())
	require.Less(t, Normal.Depth(), Hard.Depth())
	require.Equal(t, MaxDepth, Hard.Depth())

	var d, err = ParseDifficulty("easy")
	require.NoError(t, err)
	require.Equal(t, Easy, d)
	_, err = ParseDifficulty("impossible")
	require.Error(t, err)
}
