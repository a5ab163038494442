package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"tictac-engine/internal/dataset"
	"tictac-engine/internal/history"
	"tictac-engine/internal/ml"
	"tictac-engine/internal/selfplay"
	linear "tictac-engine/pkg/eval/linear"
	neural "tictac-engine/pkg/eval/neural"
	"tictac-engine/pkg/game"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	flgData      string
	flgDelim     string
	flgSelfplay  int
	flgWorkers   int
	flgEpochs    int
	flgLR        float64
	flgL2        float64
	flgKFold     int
	flgTestRatio float64
	flgSeed      uint64
	flgOut       string
	flgNeuralOut string
)

func main() {
	flag.StringVar(&flgData, "data", "", "CSV dataset: 6 feature columns then a ±1 label")
	flag.StringVar(&flgDelim, "delim", ",", "dataset delimiter")
	flag.IntVar(&flgSelfplay, "selfplay", 0, "generate this many self-play games as extra samples")
	flag.IntVar(&flgWorkers, "workers", 4, "self-play worker goroutines")
	flag.IntVar(&flgEpochs, "epochs", 1000, "training epochs")
	flag.Float64Var(&flgLR, "lr", 0.01, "learning rate")
	flag.Float64Var(&flgL2, "l2", 0.001, "L2 regularization lambda")
	flag.IntVar(&flgKFold, "kfold", 5, "cross-validation folds, 0 to skip")
	flag.Float64Var(&flgTestRatio, "testratio", 0.2, "held-out test fraction")
	flag.Uint64Var(&flgSeed, "seed", 1, "shuffle and self-play seed")
	flag.StringVar(&flgOut, "out", "model.json", "model snapshot output path")
	flag.StringVar(&flgNeuralOut, "neuralout", "", "also fit the neural evaluator on self-play games and save it here")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("train failed")
	}
}

func run() error {
	var features [][]float64
	var labels []float64
	var testFeatures [][]float64
	var testLabels []float64

	if flgData != "" {
		if flgDelim == "" {
			return errors.New("empty delimiter")
		}
		var d, err = dataset.LoadFile(flgData, rune(flgDelim[0]))
		if err != nil {
			return err
		}
		log.Info().Int("rows", d.Len()).Str("path", flgData).Msg("dataset loaded")

		var train, test = d.Split(flgTestRatio, flgSeed)
		features, labels = train.Features, train.Labels
		testFeatures, testLabels = test.Features, test.Labels
	}

	var results []selfplay.GameResult
	if flgSelfplay > 0 {
		var err error
		results, err = selfplay.Run(context.Background(), selfplay.Config{
			Games:   flgSelfplay,
			Workers: flgWorkers,
			Seed:    flgSeed,
		})
		if err != nil {
			return err
		}
		// Self-play records flow through the capped history store, the
		// same way a UI collaborator would feed played games back in.
		var store = history.NewStore(history.DefaultCapacity)
		for _, rec := range selfplay.ToRecords(results) {
			if err := store.Add(rec); err != nil {
				return err
			}
		}
		var playedFeatures, playedLabels = store.TrainingData()
		features = append(features, playedFeatures...)
		labels = append(labels, playedLabels...)
	}

	if len(features) == 0 {
		return errors.New("no training samples: pass -data and/or -selfplay")
	}
	log.Info().Int("samples", len(features)).Msg("training linear model")

	var cfg = ml.Config{
		LearningRate: flgLR,
		Epochs:       flgEpochs,
		L2Lambda:     flgL2,
		Verbose:      true,
	}
	var result, err = ml.Train(features, labels, cfg)
	if err != nil {
		return err
	}

	var trainAccuracy = ml.Accuracy(features, labels, result.Weights, result.Bias)
	log.Info().Float64("accuracy", trainAccuracy).Msg("training accuracy")
	if len(testFeatures) > 0 {
		var testAccuracy = ml.Accuracy(testFeatures, testLabels, result.Weights, result.Bias)
		log.Info().Float64("accuracy", testAccuracy).Int("samples", len(testFeatures)).Msg("test accuracy")
	}

	if flgKFold > 1 {
		var cv, errCV = ml.CrossValidate(features, labels, flgKFold, cfg)
		if errCV != nil {
			log.Warn().Err(errCV).Msg("cross-validation skipped")
		} else {
			log.Info().
				Floats64("folds", cv.FoldAccuracies).
				Float64("mean", cv.Mean).
				Float64("stddev", cv.StdDev).
				Msg("cross-validation")
		}
	}

	for _, imp := range ml.FeatureImportance(result.Weights, linear.FeatureNames()) {
		log.Info().
			Str("feature", imp.Name).
			Float64("weight", imp.Weight).
			Bool("positive", imp.Positive).
			Msg("importance")
	}

	if len(result.Weights) != linear.FeatureSize {
		return fmt.Errorf("dataset has %v feature columns, the persisted model needs %v",
			len(result.Weights), linear.FeatureSize)
	}
	var weights = linear.Weights{Bias: result.Bias}
	copy(weights.Coeffs[:], result.Weights)
	if err := weights.SaveFile(flgOut); err != nil {
		return err
	}
	log.Info().Str("path", flgOut).Msg("model saved")

	if flgNeuralOut != "" {
		if err := fitNeural(results); err != nil {
			return err
		}
	}
	return nil
}

func fitNeural(results []selfplay.GameResult) error {
	var boards []game.Board
	var labels []float64
	for _, r := range results {
		if r.Label == 0 {
			continue
		}
		boards = append(boards, r.Final)
		labels = append(labels, r.Label)
	}
	if len(boards) == 0 {
		return errors.New("no decisive self-play games to fit the neural evaluator")
	}

	var service = neural.NewEvaluationService(neural.DefaultConfig())
	if err := service.Fit(neural.Examples(boards, labels), 200, 0.01); err != nil {
		return err
	}
	if err := service.SaveFile(flgNeuralOut); err != nil {
		return err
	}
	log.Info().Int("samples", len(boards)).Str("path", flgNeuralOut).Msg("neural evaluator saved")
	return nil
}
