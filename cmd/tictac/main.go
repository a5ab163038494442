package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"tictac-engine/internal/evalbuilder"
	"tictac-engine/pkg/engine"
	"tictac-engine/pkg/game"
	"tictac-engine/pkg/proto"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	flgEval       string
	flgModel      string
	flgDifficulty string
	flgHuman      string
	flgProtocol   bool
)

func main() {
	flag.StringVar(&flgEval, "eval", "classic", "evaluation function: classic, linear, neural")
	flag.StringVar(&flgModel, "model", "", "model snapshot for the linear or neural evaluator")
	flag.StringVar(&flgDifficulty, "difficulty", "hard", "easy, normal or hard")
	flag.StringVar(&flgHuman, "human", "X", "mark played by the human, X or O")
	flag.BoolVar(&flgProtocol, "protocol", false, "speak the line protocol on stdin/stdout instead of playing interactively")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if flgProtocol {
		var p, err = proto.New(func(key string) (engine.Evaluator, error) {
			return evalbuilder.Build(key, flgModel)
		})
		if err != nil {
			log.Fatal().Err(err).Msg("init protocol")
		}
		if err := p.Run(os.Stdin, os.Stdout); err != nil {
			log.Fatal().Err(err).Msg("protocol")
		}
		return
	}

	if err := playConsole(); err != nil {
		log.Fatal().Err(err).Msg("game aborted")
	}
}

func playConsole() error {
	var evaluator, err = evalbuilder.Build(flgEval, flgModel)
	if err != nil {
		return err
	}
	var difficulty, errDifficulty = engine.ParseDifficulty(flgDifficulty)
	if errDifficulty != nil {
		return errDifficulty
	}
	var human game.Mark
	switch strings.ToUpper(flgHuman) {
	case "X":
		human = game.X
	case "O":
		human = game.O
	default:
		return fmt.Errorf("bad human mark %v", flgHuman)
	}
	var ai = human.Opponent()
	var eng = engine.NewEngine(evaluator, engine.WithDifficulty(difficulty))

	log.Info().
		Str("eval", flgEval).
		Stringer("difficulty", difficulty).
		Int("depth", eng.MaxDepth()).
		Msg("game started")

	var scanner = bufio.NewScanner(os.Stdin)
	var b game.Board
	var mover = game.X
	for {
		var outcome = b.Outcome()
		if outcome.Status != game.InProgress {
			printBoard(b)
			switch {
			case outcome.Status == game.Draw:
				fmt.Println("Draw.")
			case outcome.Winner == human:
				fmt.Println("You win.")
			default:
				fmt.Println("You lose.")
			}
			return nil
		}

		if mover == human {
			printBoard(b)
			b, err = humanMove(scanner, b, human)
			if err != nil {
				return err
			}
		} else {
			var result, errSearch = eng.FindBestMove(b, ai)
			if errSearch != nil {
				return errSearch
			}
			for _, mv := range result.MoveValues {
				log.Debug().Int("move", int(mv.Move)).Float64("value", mv.Value).Msg("candidate")
			}
			fmt.Printf("AI (%v) plays %v, value %.2f\n", ai, int(result.BestMove), result.BestValue)
			b, err = b.ApplyMove(result.BestMove, ai)
			if err != nil {
				return err
			}
		}
		mover = mover.Opponent()
	}
}

func humanMove(scanner *bufio.Scanner, b game.Board, human game.Mark) (game.Board, error) {
	for {
		fmt.Printf("Your move (0-8) as %v: ", human)
		if !scanner.Scan() {
			return b, fmt.Errorf("input closed")
		}
		var idx, err = strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Println("Enter a cell index 0-8.")
			continue
		}
		child, err := b.ApplyMove(game.Move(idx), human)
		if err != nil {
			fmt.Println("That cell is taken or out of range.")
			continue
		}
		return child, nil
	}
}

func printBoard(b game.Board) {
	fmt.Println()
	for row := 0; row < 3; row++ {
		var cells = make([]string, 3)
		for col := 0; col < 3; col++ {
			var idx = row*3 + col
			if b[idx] == game.Empty {
				cells[col] = strconv.Itoa(idx)
			} else {
				cells[col] = b[idx].String()
			}
		}
		fmt.Println(" " + strings.Join(cells, " | "))
		if row < 2 {
			fmt.Println("---+---+---")
		}
	}
	fmt.Println()
}
