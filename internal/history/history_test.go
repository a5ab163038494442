package history

import (
	"bytes"
	"testing"

	linear "tictac-engine/pkg/eval/linear"

	"github.com/stretchr/testify/require"
)

func record(firstFeature, label float64) Record {
	var fv linear.FeatureVector
	fv[0] = firstFeature
	return Record{Features: fv, Label: label}
}

func TestStoreFIFOEviction(t *testing.T) {
	var s = NewStore(3)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Add(record(float64(i), 1)))
	}
	require.Equal(t, 3, s.Len())
	var records = s.Records()
	require.Equal(t, 2.0, records[0].Features[0], "oldest records must be evicted first")
	require.Equal(t, 4.0, records[2].Features[0])
}

func TestStoreRejectsDraws(t *testing.T) {
	var s = NewStore(0)
	require.Error(t, s.Add(record(1, 0)))
	require.NoError(t, s.Add(record(1, -1)))
	require.Equal(t, 1, s.Len())
}

func TestTrainingData(t *testing.T) {
	var s = NewStore(10)
	require.NoError(t, s.Add(record(3, 1)))
	require.NoError(t, s.Add(record(4, -1)))
	var features, labels = s.TrainingData()
	require.Len(t, features, 2)
	require.Equal(t, 3.0, features[0][0])
	require.Equal(t, []float64{1, -1}, labels)
	require.Len(t, features[0], linear.FeatureSize)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	var s = NewStore(10)
	require.NoError(t, s.Add(record(1, 1)))
	require.NoError(t, s.Add(record(2, -1)))

	var buf bytes.Buffer
	require.NoError(t, s.Save(&buf))

	var loaded = NewStore(10)
	require.NoError(t, loaded.Load(&buf))
	require.Equal(t, s.Records(), loaded.Records())
}

func TestDefaultCapacity(t *testing.T) {
	var s = NewStore(0)
	for i := 0; i < DefaultCapacity+20; i++ {
		require.NoError(t, s.Add(record(float64(i), 1)))
	}
	require.Equal(t, DefaultCapacity, s.Len())
}
