package proto

import (
	"strings"
	"testing"

	"tictac-engine/pkg/engine"
	classic "tictac-engine/pkg/eval/classic"

	"github.com/stretchr/testify/require"
)

func newTestProtocol(t *testing.T) *Protocol {
	var p, err = New(func(key string) (engine.Evaluator, error) {
		return classic.NewEvaluationService(), nil
	})
	require.NoError(t, err)
	return p
}

func TestGoFindsWinningMove(t *testing.T) {
	var p = newTestProtocol(t)
	var in = strings.NewReader("position XX.OO....\ngo O\nquit\n")
	var out strings.Builder
	require.NoError(t, p.Run(in, &out))

	require.Contains(t, out.String(), "bestmove 5")
	require.Contains(t, out.String(), "info move 5 value 99.00")
}

func TestShowReportsOutcome(t *testing.T) {
	var p = newTestProtocol(t)
	var in = strings.NewReader("position XXXOO....\nshow\n")
	var out strings.Builder
	require.NoError(t, p.Run(in, &out))
	require.Contains(t, out.String(), "result win X line 0 1 2")
}

func TestBadCommandsReportErrors(t *testing.T) {
	var p = newTestProtocol(t)
	var in = strings.NewReader("nonsense\nposition XX\ngo Q\ndifficulty impossible\nisready\n")
	var out strings.Builder
	require.NoError(t, p.Run(in, &out))

	var lines = strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	for _, line := range lines[:4] {
		require.True(t, strings.HasPrefix(line, "error "), line)
	}
	require.Equal(t, "readyok", lines[4])
}

func TestGoOnFullBoard(t *testing.T) {
	var p = newTestProtocol(t)
	var in = strings.NewReader("position XOXXXOOXO\ngo X\n")
	var out strings.Builder
	require.NoError(t, p.Run(in, &out))
	require.Contains(t, out.String(), "error ")
}
