package selfplay

import (
	"context"
	"testing"

	"tictac-engine/pkg/game"

	"github.com/stretchr/testify/require"
)

func TestRunProducesFinishedGames(t *testing.T) {
	var results, err = Run(context.Background(), Config{
		Games:    20,
		Workers:  4,
		MaxDepth: 3,
		Seed:     1,
	})
	require.NoError(t, err)
	require.Len(t, results, 20)
	for _, r := range results {
		var outcome = r.Final.Outcome()
		require.NotEqual(t, game.InProgress, outcome.Status)
		switch outcome.Status {
		case game.Win:
			if outcome.Winner == game.X {
				require.Equal(t, 1.0, r.Label)
			} else {
				require.Equal(t, -1.0, r.Label)
			}
		case game.Draw:
			require.Equal(t, 0.0, r.Label)
		}
	}
}

func TestRunDeterministicPerSeed(t *testing.T) {
	var cfg = Config{Games: 10, Workers: 1, MaxDepth: 3, Seed: 42}
	var first, err = Run(context.Background(), cfg)
	require.NoError(t, err)
	var second, err2 = Run(context.Background(), cfg)
	require.NoError(t, err2)
	require.ElementsMatch(t, first, second)
}

func TestRunRejectsZeroGames(t *testing.T) {
	var _, err = Run(context.Background(), Config{})
	require.Error(t, err)
}

func TestToRecordsSkipsDraws(t *testing.T) {
	var won = game.MustParseBoard("XXX OO. ...")
	var drawn = game.MustParseBoard("XOX XXO OXO")
	var results = []GameResult{
		{Final: won, Label: 1},
		{Final: drawn, Label: 0},
	}
	var records = ToRecords(results)
	require.Len(t, records, 1)
	require.Equal(t, 1.0, records[0].Label)
	require.Equal(t, 3.0, records[0].Features[0], "features are extracted for X")
}
