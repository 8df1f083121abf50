// Package termstats holds the precomputed per-minutes term statistics used
// by the word-cloud endpoints. The table is loaded from a JSON file at
// startup and replaced wholesale on reload: readers always see a complete,
// immutable snapshot behind an atomic pointer.
package termstats

import (
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
)

// Stats holds the term frequency and tf-idf weight of one term, serialized
// in the table file as a two-element array [tf, tfidf].
type Stats struct {
	TF    float64
	TFIDF float64
}

// UnmarshalJSON decodes the [tf, tfidf] pair form.
func (s *Stats) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("term stats pair: %w", err)
	}
	s.TF = pair[0]
	s.TFIDF = pair[1]
	return nil
}

// MarshalJSON encodes back to the [tf, tfidf] pair form.
func (s Stats) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{s.TF, s.TFIDF})
}

// Table maps minutes ID -> term -> stats. A Table is never mutated after load.
type Table map[string]map[string]Stats

// Store owns the current table snapshot.
type Store struct {
	defaultPath string
	logger      *zap.Logger
	table       atomic.Pointer[Table]
}

// NewStore creates an empty store; call Reload (or Watch) to populate it.
func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{defaultPath: path, logger: logger}
}

// Reload loads the table from path, or from the configured default when path
// is empty, and swaps it in atomically. On failure the previous snapshot
// stays in place.
func (s *Store) Reload(path string) error {
	if path == "" {
		path = s.defaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read term stats %s: %w", path, err)
	}

	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		return fmt.Errorf("parse term stats %s: %w", path, err)
	}

	s.table.Store(&table)
	s.logger.Info("loaded term stats",
		zap.String("path", path),
		zap.Int("minutes", len(table)),
	)
	return nil
}

// Snapshot returns the current table, or nil when nothing has been loaded.
// The returned table must not be modified.
func (s *Store) Snapshot() Table {
	if t := s.table.Load(); t != nil {
		return *t
	}
	return nil
}
