package history

import (
	"encoding/json"
	"fmt"
	"io"

	linear "tictac-engine/pkg/eval/linear"
)

// DefaultCapacity bounds retained records; the oldest record is evicted
// first once the store is full.
const DefaultCapacity = 500

// Record is one decisive game: dataset-format features (always computed for
// X) with the final result as label, +1 for an X win and -1 for an O win.
// Draws are never recorded.
type Record struct {
	Features linear.FeatureVector `json:"features"`
	Label    float64              `json:"label"`
}

type Store struct {
	capacity int
	records  []Record
}

func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{capacity: capacity}
}

// Add appends a record, evicting the oldest once over capacity. Labels
// other than +1/-1 are rejected: only decisive games belong here.
func (s *Store) Add(rec Record) error {
	if rec.Label != 1 && rec.Label != -1 {
		return fmt.Errorf("history: label %v, want +1 or -1", rec.Label)
	}
	s.records = append(s.records, rec)
	if len(s.records) > s.capacity {
		s.records = s.records[len(s.records)-s.capacity:]
	}
	return nil
}

func (s *Store) Len() int { return len(s.records) }

func (s *Store) Records() []Record {
	var result = make([]Record, len(s.records))
	copy(result, s.records)
	return result
}

// TrainingData converts the stored records into the arrays the trainer
// consumes.
func (s *Store) TrainingData() (features [][]float64, labels []float64) {
	for _, rec := range s.records {
		features = append(features, rec.Features.Slice())
		labels = append(labels, rec.Label)
	}
	return features, labels
}

// Save writes the records as JSON; persistence location is the caller's
// concern.
func (s *Store) Save(out io.Writer) error {
	return json.NewEncoder(out).Encode(s.records)
}

func (s *Store) Load(in io.Reader) error {
	var records []Record
	if err := json.NewDecoder(in).Decode(&records); err != nil {
		return fmt.Errorf("history: %w", err)
	}
	s.records = nil
	for _, rec := range records {
		if err := s.Add(rec); err != nil {
			return err
		}
	}
	return nil
}
