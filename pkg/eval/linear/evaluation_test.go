package eval

import (
	"bytes"
	"testing"

	"tictac-engine/pkg/game"

	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	var b = game.MustParseBoard("XX. OO. X..")
	var fv = Extract(b)

	require.Equal(t, 3.0, fv[fXMarks])
	require.Equal(t, 2.0, fv[fOMarks])
	// X threatens on the top row (idx 2) and the left column (0,3,6 is
	// blocked by O at 3), so only rows/lines with two X and one empty count.
	require.Equal(t, 1.0, fv[fXThreats])
	require.Equal(t, 1.0, fv[fOThreats])
	require.Equal(t, 0.0, fv[fCenter])
	require.Equal(t, 2.0, fv[fCorners])
}

func TestExtractForSwapsPerspective(t *testing.T) {
	var b = game.MustParseBoard("XX. OO. ..O")
	var forX = ExtractFor(b, game.X)
	var forO = ExtractFor(b, game.O)

	require.Equal(t, forX[fXMarks], forO[fOMarks])
	require.Equal(t, forX[fOMarks], forO[fXMarks])
	require.Equal(t, forX[fXThreats], forO[fOThreats])
	require.Equal(t, forX[fOThreats], forO[fXThreats])
	// Center and corners come straight off the board for the evaluated side.
	require.Equal(t, 1.0, forO[fCenter])
	require.Equal(t, 1.0, forO[fCorners])
	require.Equal(t, 0.0, forX[fCenter])
	require.Equal(t, 0.0, forX[fCorners])
}

func TestExtractForCenter(t *testing.T) {
	var b = game.MustParseBoard(".... O ....")
	require.Equal(t, 0.0, ExtractFor(b, game.X)[fCenter])
	require.Equal(t, 1.0, ExtractFor(b, game.O)[fCenter])
}

func TestEvaluateIdempotent(t *testing.T) {
	var b = game.MustParseBoard("X.O .X. ..O")
	var e = NewEvaluationService(DefaultWeights())
	var first = e.Evaluate(b, game.X)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, e.Evaluate(b, game.X))
	}
}

func TestEvaluateClamp(t *testing.T) {
	var w = Weights{Coeffs: [FeatureSize]float64{1000, -1000, 1000, -1000, 1000, 1000}}
	var e = NewEvaluationService(w)
	var b = game.MustParseBoard("XX. X.X .XX")
	var score = e.Evaluate(b, game.X)
	require.Equal(t, float64(ScoreClamp), score)
	require.Equal(t, float64(-ScoreClamp), e.Evaluate(b, game.O))
}

func TestSetWeights(t *testing.T) {
	var b = game.MustParseBoard("X.. .O. ...")
	var e = NewEvaluationService(Weights{})
	require.Equal(t, 0.0, e.Evaluate(b, game.X))

	var w = Weights{Bias: 3}
	w.Coeffs[fXMarks] = 2
	e.SetWeights(w)
	require.Equal(t, 5.0, e.Evaluate(b, game.X))
}

func TestNoiseStaysBounded(t *testing.T) {
	var b = game.MustParseBoard("X.O .X. ...")
	var plain = NewEvaluationService(DefaultWeights())
	var noisy = NewEvaluationService(DefaultWeights(), WithNoise(5, 1))
	var base = plain.Evaluate(b, game.X)
	for i := 0; i < 200; i++ {
		var score = noisy.Evaluate(b, game.X)
		require.LessOrEqual(t, score, base+5)
		require.GreaterOrEqual(t, score, base-5)
		require.LessOrEqual(t, score, float64(ScoreClamp))
		require.GreaterOrEqual(t, score, float64(-ScoreClamp))
	}
}

func TestWeightsRoundTrip(t *testing.T) {
	var w = Weights{Bias: 0.25}
	w.Coeffs = [FeatureSize]float64{1.5, -2.25, 3, -0.125, 7, 0}

	var buf bytes.Buffer
	require.NoError(t, w.Save(&buf))

	var got, err = LoadWeights(&buf)
	require.NoError(t, err)
	require.Equal(t, w, got)
}

func TestLoadWeightsBadSize(t *testing.T) {
	var in = bytes.NewBufferString(`{"weights":[1,2],"bias":0,"featureNames":["a","b"]}`)
	var _, err = LoadWeights(in)
	require.Error(t, err)
}
