package engine

import (
	"errors"

	"tictac-engine/pkg/game"
)

// Evaluator scores a non-terminal board from side's point of view. The
// search never calls it on terminal boards: terminal detection runs first
// at every ply.
type Evaluator interface {
	Evaluate(b game.Board, side game.Mark) float64
}

// WinValue is the terminal sentinel base: a win found at search depth d
// scores WinValue-d, a loss d-WinValue. Evaluators must stay inside
// (-WinValue+MaxDepth, WinValue-MaxDepth) so heuristic scores can never
// outrank a proven result.
const WinValue = 100

// MaxDepth explores the complete remaining game tree on a 3x3 board.
const MaxDepth = 9

var ErrNoLegalMoves = errors.New("no legal moves")

type Difficulty uint8

const (
	Easy Difficulty = iota
	Normal
	Hard
)

// Depth maps difficulty to search depth, monotonically increasing; Hard
// searches the full tree and never loses.
func (d Difficulty) Depth() int {
	switch d {
	case Easy:
		return 2
	case Normal:
		return 4
	}
	return MaxDepth
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Normal:
		return "normal"
	}
	return "hard"
}

func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return Easy, nil
	case "normal":
		return Normal, nil
	case "hard":
		return Hard, nil
	}
	return Hard, errors.New("bad difficulty " + s)
}

type MoveValue struct {
	Move  game.Move
	Value float64
}

type SearchResult struct {
	BestMove  game.Move
	BestValue float64
	// MoveValues holds every root move, sorted descending by value; equal
	// values keep ascending move order.
	MoveValues []MoveValue
}

type Engine struct {
	evaluator Evaluator
	maxDepth  int
}

type Option func(*Engine)

func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		if depth > 0 {
			e.maxDepth = depth
		}
	}
}

func WithDifficulty(d Difficulty) Option {
	return func(e *Engine) {
		e.maxDepth = d.Depth()
	}
}

func NewEngine(evaluator Evaluator, options ...Option) *Engine {
	var e = &Engine{
		evaluator: evaluator,
		maxDepth:  MaxDepth,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *Engine) MaxDepth() int { return e.maxDepth }
