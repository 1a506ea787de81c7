package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dsalens/dsalens/types"
	"github.com/google/uuid"
)

const (
	// historyKey is the logical key holding the serialized history list.
	historyKey = "analysis_history"
	// HistoryLimit caps the number of retained entries. Once the cap is
	// exceeded the oldest entries are discarded first.
	HistoryLimit = 50
)

// HistoryStore is a bounded, most-recent-first cache of past analyses
// layered on top of a KeyValue collaborator. It holds no state of its
// own; every operation is a load-mutate-overwrite cycle against the
// underlying blob.
type HistoryStore struct {
	kv KeyValue
}

// NewHistoryStore creates a history store over the given KeyValue.
func NewHistoryStore(kv KeyValue) *HistoryStore {
	return &HistoryStore{kv: kv}
}

// Append inserts entry at the front of the history. The id and
// timestamp are generated at insertion time when unset. If the size
// exceeds HistoryLimit after insertion, entries are discarded from the
// back until the size equals the cap. The stored entry is returned.
func (s *HistoryStore) Append(entry types.HistoryEntry) (types.HistoryEntry, error) {
	entries, err := s.load()
	if err != nil {
		return types.HistoryEntry{}, err
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	entries = append([]types.HistoryEntry{entry}, entries...)
	if len(entries) > HistoryLimit {
		entries = entries[:HistoryLimit]
	}

	if err := s.save(entries); err != nil {
		return types.HistoryEntry{}, err
	}
	return entry, nil
}

// List returns up to limit most-recent entries, newest first, without
// mutating the store. A non-positive limit returns all entries.
func (s *HistoryStore) List(limit int) ([]types.HistoryEntry, error) {
	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// FindByID returns the entry with the given id. The second return value
// reports whether it was found.
func (s *HistoryStore) FindByID(id string) (types.HistoryEntry, bool, error) {
	entries, err := s.load()
	if err != nil {
		return types.HistoryEntry{}, false, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, true, nil
		}
	}
	return types.HistoryEntry{}, false, nil
}

// Clear empties the history unconditionally.
func (s *HistoryStore) Clear() error {
	return s.kv.Delete(historyKey)
}

func (s *HistoryStore) load() ([]types.HistoryEntry, error) {
	raw, ok, err := s.kv.Get(historyKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	if !ok || len(raw) == 0 {
		return nil, nil
	}
	var entries []types.HistoryEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}
	return entries, nil
}

func (s *HistoryStore) save(entries []types.HistoryEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := s.kv.Set(historyKey, raw); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}
