package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/exp/rand"
)

// Dataset holds feature rows with their labels; the last input column is
// the label, everything before it is a feature.
type Dataset struct {
	Columns  []string
	Features [][]float64
	Labels   []float64
}

var ErrEmptyDataset = errors.New("dataset has no valid rows")

func (d *Dataset) Len() int { return len(d.Features) }

// Load parses delimited numeric text: a header row of column names followed
// by one data row per game. Rows with a column-count mismatch or non-numeric
// cells are dropped without failing the whole load.
func Load(r io.Reader, comma rune) (*Dataset, error) {
	var reader = csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("dataset header has %v columns, want features plus label", len(header))
	}

	var d = &Dataset{Columns: header}
	var featureCount = len(header) - 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset row: %w", err)
		}
		if len(record) != len(header) {
			continue
		}
		var row = make([]float64, 0, featureCount)
		var ok = true
		for _, field := range record {
			value, err := strconv.ParseFloat(field, 64)
			if err != nil {
				ok = false
				break
			}
			row = append(row, value)
		}
		if !ok {
			continue
		}
		d.Features = append(d.Features, row[:featureCount])
		d.Labels = append(d.Labels, row[featureCount])
	}

	if len(d.Features) == 0 {
		return nil, ErrEmptyDataset
	}
	return d, nil
}

func LoadFile(path string, comma rune) (*Dataset, error) {
	var f, err = os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Load(f, comma)
}

// Split shuffles row indices (Fisher-Yates) and carves off testRatio of the
// rows into the test set.
func (d *Dataset) Split(testRatio float64, seed uint64) (train, test *Dataset) {
	var n = d.Len()
	var indices = make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	var rnd = rand.New(rand.NewSource(seed))
	rnd.Shuffle(n, func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	var testSize = int(float64(n) * testRatio)
	train = &Dataset{Columns: d.Columns}
	test = &Dataset{Columns: d.Columns}
	for i, idx := range indices {
		if i < testSize {
			test.Features = append(test.Features, d.Features[idx])
			test.Labels = append(test.Labels, d.Labels[idx])
		} else {
			train.Features = append(train.Features, d.Features[idx])
			train.Labels = append(train.Labels, d.Labels[idx])
		}
	}
	return train, test
}
