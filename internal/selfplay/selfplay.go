package selfplay

import (
	"context"
	"fmt"

	"tictac-engine/internal/history"
	"tictac-engine/pkg/engine"
	linear "tictac-engine/pkg/eval/linear"
	"tictac-engine/pkg/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// Config drives a batch of engine-vs-engine games. Depths are drawn per
// side per game from [1, MaxDepth] and the first ply is randomized, so the
// batch produces decisive games instead of an endless string of perfect
// draws.
type Config struct {
	Games     int
	Workers   int
	MaxDepth  int
	Seed      uint64
	Evaluator func() engine.Evaluator
}

// GameResult carries the final board of one finished game; Label is +1 for
// an X win, -1 for an O win, 0 for a draw.
type GameResult struct {
	Final game.Board
	Label float64
}

// Run plays cfg.Games games across cfg.Workers goroutines and returns every
// result, draws included; ToRecords filters those out.
func Run(ctx context.Context, cfg Config) ([]GameResult, error) {
	if cfg.Games <= 0 {
		return nil, fmt.Errorf("selfplay: %v games", cfg.Games)
	}
	var workers = cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	var maxDepth = cfg.MaxDepth
	if maxDepth <= 0 || maxDepth > engine.MaxDepth {
		maxDepth = engine.MaxDepth
	}
	var newEvaluator = cfg.Evaluator
	if newEvaluator == nil {
		newEvaluator = func() engine.Evaluator {
			return linear.NewEvaluationService(linear.DefaultWeights())
		}
	}

	g, ctx := errgroup.WithContext(ctx)

	var seeds = make(chan uint64, workers)
	g.Go(func() error {
		defer close(seeds)
		for i := 0; i < cfg.Games; i++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case seeds <- cfg.Seed + uint64(i):
			}
		}
		return nil
	})

	var results = make(chan GameResult, workers)
	var done = make(chan struct{})
	var collected []GameResult
	go func() {
		defer close(done)
		for r := range results {
			collected = append(collected, r)
		}
	}()

	var workerGroup, workerCtx = errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		workerGroup.Go(func() error {
			var evaluator = newEvaluator()
			for seed := range seeds {
				var result, err = playGame(evaluator, maxDepth, seed)
				if err != nil {
					return err
				}
				select {
				case <-workerCtx.Done():
					return workerCtx.Err()
				case results <- result:
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(results)
		return workerGroup.Wait()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	<-done

	var decisive int
	for _, r := range collected {
		if r.Label != 0 {
			decisive++
		}
	}
	log.Info().
		Int("games", len(collected)).
		Int("decisive", decisive).
		Msg("selfplay finished")
	return collected, nil
}

// playGame runs one game with per-side depths and a random opening ply.
func playGame(evaluator engine.Evaluator, maxDepth int, seed uint64) (GameResult, error) {
	var rnd = rand.New(rand.NewSource(seed))
	var depths = map[game.Mark]int{
		game.X: 1 + rnd.Intn(maxDepth),
		game.O: 1 + rnd.Intn(maxDepth),
	}
	var engines = map[game.Mark]*engine.Engine{
		game.X: engine.NewEngine(evaluator, engine.WithMaxDepth(depths[game.X])),
		game.O: engine.NewEngine(evaluator, engine.WithMaxDepth(depths[game.O])),
	}

	var b game.Board
	var mover = game.X

	// random opening ply for variety
	var opening = b.LegalMoves()[rnd.Intn(9)]
	b, _ = b.ApplyMove(opening, mover)
	mover = mover.Opponent()

	for {
		var outcome = b.Outcome()
		if outcome.Status != game.InProgress {
			var result = GameResult{Final: b}
			if outcome.Status == game.Win {
				if outcome.Winner == game.X {
					result.Label = 1
				} else {
					result.Label = -1
				}
			}
			return result, nil
		}
		var searchResult, err = engines[mover].FindBestMove(b, mover)
		if err != nil {
			return GameResult{}, err
		}
		b, err = b.ApplyMove(searchResult.BestMove, mover)
		if err != nil {
			return GameResult{}, err
		}
		mover = mover.Opponent()
	}
}

// ToRecords converts decisive results into history records: dataset-format
// features of the final board, always from X's perspective.
func ToRecords(results []GameResult) []history.Record {
	var records []history.Record
	for _, r := range results {
		if r.Label == 0 {
			continue
		}
		records = append(records, history.Record{
			Features: linear.Extract(r.Final),
			Label:    r.Label,
		})
	}
	return records
}
