package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"git.home.luguber.info/inful/pagestrap/internal/templates"
)

// ErrNotBootstrapped is returned by Load when no record exists.
var ErrNotBootstrapped = errors.New("not bootstrapped: no state record")

// JSONStore keeps the record as a single JSON document on disk.
type JSONStore struct {
	path string
	now  func() time.Time
}

// NewJSONStore creates a store for the record at path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path, now: time.Now}
}

// WithClock overrides the timestamp source (used by tests).
func (s *JSONStore) WithClock(now func() time.Time) *JSONStore {
	s.now = now
	return s
}

// Path returns the record location.
func (s *JSONStore) Path() string {
	return s.path
}

// Exists reports whether a record is present.
func (s *JSONStore) Exists() (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat state record: %w", err)
}

// Load reads the record.
func (s *JSONStore) Load() (*Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotBootstrapped
		}
		return nil, fmt.Errorf("read state record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode state record %s: %w", s.path, err)
	}
	return &rec, nil
}

// Save overwrites the record. A zero Timestamp is filled with the current
// UTC time; timestamps are always stored in UTC.
func (s *JSONStore) Save(rec Record) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = s.now()
	}
	rec.Timestamp = rec.Timestamp.UTC().Truncate(time.Second)

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state record: %w", err)
	}
	data = append(data, '\n')
	if err := templates.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write state record: %w", err)
	}
	return nil
}

// Delete removes the record. removed is false when nothing was there.
func (s *JSONStore) Delete() (removed bool, err error) {
	if err := os.Remove(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("remove state record: %w", err)
	}
	return true, nil
}
