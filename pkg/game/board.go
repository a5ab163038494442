package game

import (
	"errors"
	"fmt"
	"strings"
)

// Mark is the content of a single cell.
type Mark uint8

const (
	Empty Mark = iota
	X
	O
)

func (m Mark) Opponent() Mark {
	switch m {
	case X:
		return O
	case O:
		return X
	}
	return Empty
}

func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	}
	return "."
}

// Move is an index 0..8 into the board, row-major (row = idx/3, col = idx%3).
type Move int

func (m Move) Row() int { return int(m) / 3 }
func (m Move) Col() int { return int(m) % 3 }

// Board is a value type, cheaply copied per search branch.
type Board [9]Mark

var ErrInvalidMove = errors.New("invalid move")

// winLines lists the 8 winning lines: 3 rows, 3 columns, 2 diagonals.
var winLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// WinLines exposes the winning lines for feature extraction.
func WinLines() [8][3]int { return winLines }

// LegalMoves returns all empty indices in ascending order.
func (b Board) LegalMoves() []Move {
	var result = make([]Move, 0, 9)
	for i := range b {
		if b[i] == Empty {
			result = append(result, Move(i))
		}
	}
	return result
}

// ApplyMove returns a new board with move set to mark. Core callers are
// expected to pre-filter via LegalMoves; occupied or out-of-range cells
// report ErrInvalidMove.
func (b Board) ApplyMove(move Move, mark Mark) (Board, error) {
	if move < 0 || move > 8 {
		return b, fmt.Errorf("%w: index %v out of range", ErrInvalidMove, int(move))
	}
	if b[move] != Empty {
		return b, fmt.Errorf("%w: cell %v occupied", ErrInvalidMove, int(move))
	}
	if mark != X && mark != O {
		return b, fmt.Errorf("%w: bad mark", ErrInvalidMove)
	}
	b[move] = mark
	return b, nil
}

type Status uint8

const (
	InProgress Status = iota
	Win
	Draw
)

// Outcome is derived from a board, never stored independently.
type Outcome struct {
	Status Status
	Winner Mark
	Line   [3]int
}

// Outcome checks the 8 winning lines; a line wins if all 3 cells hold the
// same non-empty mark. No winning line and no empty cell means Draw.
func (b Board) Outcome() Outcome {
	for _, line := range winLines {
		var m = b[line[0]]
		if m != Empty && m == b[line[1]] && m == b[line[2]] {
			return Outcome{Status: Win, Winner: m, Line: line}
		}
	}
	for i := range b {
		if b[i] == Empty {
			return Outcome{Status: InProgress}
		}
	}
	return Outcome{Status: Draw}
}

func (b Board) IsTerminal() bool {
	return b.Outcome().Status != InProgress
}

func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			sb.WriteString(b[row*3+col].String())
			if col < 2 {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ParseBoard builds a board from a 9-cell string of X, O and . characters.
// Whitespace is ignored, so multi-line layouts parse too.
func ParseBoard(s string) (Board, error) {
	var b Board
	var i int
	for _, r := range s {
		switch r {
		case 'X', 'x':
			if i > 8 {
				return Board{}, fmt.Errorf("parse board: too many cells in %q", s)
			}
			b[i] = X
			i++
		case 'O', 'o':
			if i > 8 {
				return Board{}, fmt.Errorf("parse board: too many cells in %q", s)
			}
			b[i] = O
			i++
		case '.', '-', '_':
			if i > 8 {
				return Board{}, fmt.Errorf("parse board: too many cells in %q", s)
			}
			b[i] = Empty
			i++
		case ' ', '\t', '\n', '\r', '|':
		default:
			return Board{}, fmt.Errorf("parse board: bad cell %q in %q", r, s)
		}
	}
	if i != 9 {
		return Board{}, fmt.Errorf("parse board: %v cells in %q, want 9", i, s)
	}
	return b, nil
}

// MustParseBoard is a test and example helper.
func MustParseBoard(s string) Board {
	var b, err = ParseBoard(s)
	if err != nil {
		panic(err)
	}
	return b
}
