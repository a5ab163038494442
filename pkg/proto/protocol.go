// Package proto speaks a UCI-style line protocol so an external UI can
// drive the engine over stdin/stdout: set a position, pick an evaluator and
// difficulty, then ask for the best move and the ranked move list.
package proto

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"tictac-engine/pkg/engine"
	"tictac-engine/pkg/game"
)

// BuildEvaluator lets the caller decide how evaluator keys map to
// services; cmd wires internal/evalbuilder here.
type BuildEvaluator func(key string) (engine.Evaluator, error)

type Protocol struct {
	build      BuildEvaluator
	out        io.Writer
	board      game.Board
	evaluator  engine.Evaluator
	difficulty engine.Difficulty
	fields     []string
}

func New(build BuildEvaluator) (*Protocol, error) {
	var evaluator, err = build("")
	if err != nil {
		return nil, err
	}
	return &Protocol{
		build:      build,
		evaluator:  evaluator,
		difficulty: engine.Hard,
	}, nil
}

func (p *Protocol) Run(in io.Reader, out io.Writer) error {
	p.out = out
	var scanner = bufio.NewScanner(in)
	for scanner.Scan() {
		var line = scanner.Text()
		if strings.TrimSpace(line) == "quit" {
			break
		}
		if err := p.handle(line); err != nil {
			fmt.Fprintf(out, "error %v\n", err)
		}
	}
	return scanner.Err()
}

func (p *Protocol) handle(line string) error {
	var fields = strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	p.fields = fields[1:]

	switch fields[0] {
	case "position":
		return p.positionCommand()
	case "eval":
		return p.evalCommand()
	case "difficulty":
		return p.difficultyCommand()
	case "go":
		return p.goCommand()
	case "show":
		return p.showCommand()
	case "isready":
		fmt.Fprintln(p.out, "readyok")
		return nil
	}
	return errors.New("command not found")
}

func (p *Protocol) positionCommand() error {
	if len(p.fields) == 0 {
		return errors.New("position needs 9 cells")
	}
	var b, err = game.ParseBoard(strings.Join(p.fields, ""))
	if err != nil {
		return err
	}
	p.board = b
	return nil
}

func (p *Protocol) evalCommand() error {
	if len(p.fields) != 1 {
		return errors.New("eval needs a key")
	}
	var evaluator, err = p.build(p.fields[0])
	if err != nil {
		return err
	}
	p.evaluator = evaluator
	return nil
}

func (p *Protocol) difficultyCommand() error {
	if len(p.fields) != 1 {
		return errors.New("difficulty needs a level")
	}
	var d, err = engine.ParseDifficulty(p.fields[0])
	if err != nil {
		return err
	}
	p.difficulty = d
	return nil
}

func (p *Protocol) goCommand() error {
	if len(p.fields) != 1 {
		return errors.New("go needs a side, X or O")
	}
	var side game.Mark
	switch p.fields[0] {
	case "X", "x":
		side = game.X
	case "O", "o":
		side = game.O
	default:
		return fmt.Errorf("bad side %v", p.fields[0])
	}

	var eng = engine.NewEngine(p.evaluator, engine.WithDifficulty(p.difficulty))
	var result, err = eng.FindBestMove(p.board, side)
	if err != nil {
		return err
	}
	for _, mv := range result.MoveValues {
		fmt.Fprintf(p.out, "info move %v value %.2f\n", int(mv.Move), mv.Value)
	}
	fmt.Fprintf(p.out, "bestmove %v\n", int(result.BestMove))
	return nil
}

func (p *Protocol) showCommand() error {
	var outcome = p.board.Outcome()
	fmt.Fprint(p.out, p.board.String())
	switch outcome.Status {
	case game.Win:
		fmt.Fprintf(p.out, "result win %v line %v %v %v\n",
			outcome.Winner, outcome.Line[0], outcome.Line[1], outcome.Line[2])
	case game.Draw:
		fmt.Fprintln(p.out, "result draw")
	default:
		fmt.Fprintln(p.out, "result inprogress")
	}
	return nil
}
