package store

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/dsalens/dsalens/types"
)

// memoryKV is a minimal in-memory KeyValue for policy tests.
type memoryKV struct {
	entries map[string][]byte
}

func newMemoryKV() *memoryKV {
	return &memoryKV{entries: make(map[string][]byte)}
}

func (m *memoryKV) Get(key string) ([]byte, bool, error) {
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *memoryKV) Set(key string, value []byte) error {
	m.entries[key] = value
	return nil
}

func (m *memoryKV) Delete(key string) error {
	delete(m.entries, key)
	return nil
}

func (m *memoryKV) Close() error { return nil }

func sampleResult() types.AnalysisResult {
	return types.AnalysisResult{
		TimeComplexity: types.ComplexityEstimate{
			BigO: "O(n)", BestCase: "O(1)", AverageCase: "O(n)", WorstCase: "O(n)",
			Explanation: "linear scan", CodeHighlights: []types.CodeHighlight{}, Confidence: 90,
		},
		SpaceComplexity: types.ComplexityEstimate{
			BigO: "O(1)", BestCase: "O(1)", AverageCase: "O(1)", WorstCase: "O(1)",
			Explanation: "constant storage", CodeHighlights: []types.CodeHighlight{}, Confidence: 95,
		},
		Explanation:   "simple loop",
		Suggestions:   []string{},
		AlgorithmType: "iteration",
	}
}

func TestHistoryStore_AppendGeneratesIDAndTimestamp(t *testing.T) {
	hs := NewHistoryStore(newMemoryKV())

	stored, err := hs.Append(types.HistoryEntry{Code: "x = 1", Language: "python", Result: sampleResult()})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if stored.ID == "" {
		t.Error("Append did not generate an id")
	}
	if stored.Timestamp.IsZero() {
		t.Error("Append did not generate a timestamp")
	}

	entries, err := hs.List(0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != stored.ID {
		t.Errorf("stored entry not listed: %+v", entries)
	}
}

func TestHistoryStore_CapAndEviction(t *testing.T) {
	hs := NewHistoryStore(newMemoryKV())

	var firstID, lastID string
	for i := 1; i <= HistoryLimit+1; i++ {
		stored, err := hs.Append(types.HistoryEntry{
			Code:     fmt.Sprintf("sample %d", i),
			Language: "go",
			Result:   sampleResult(),
		})
		if err != nil {
			t.Fatalf("Append %d failed: %v", i, err)
		}
		if i == 1 {
			firstID = stored.ID
		}
		if i == HistoryLimit+1 {
			lastID = stored.ID
		}
	}

	entries, err := hs.List(0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != HistoryLimit {
		t.Fatalf("expected exactly %d entries after %d appends, got %d", HistoryLimit, HistoryLimit+1, len(entries))
	}
	if entries[0].ID != lastID {
		t.Errorf("most recent entry is not first")
	}
	if _, found, _ := hs.FindByID(firstID); found {
		t.Errorf("oldest entry was not evicted")
	}

	// The 5 most recent, newest first.
	recent, err := hs.List(5)
	if err != nil {
		t.Fatalf("List(5) failed: %v", err)
	}
	if len(recent) != 5 {
		t.Fatalf("List(5) returned %d entries", len(recent))
	}
	for i, e := range recent {
		want := fmt.Sprintf("sample %d", HistoryLimit+1-i)
		if e.Code != want {
			t.Errorf("List(5)[%d]: got %q, want %q", i, e.Code, want)
		}
	}

	// Listing does not mutate the store.
	again, _ := hs.List(0)
	if len(again) != HistoryLimit {
		t.Errorf("List mutated the store: %d entries", len(again))
	}
}

func TestHistoryStore_NewestFirstOrdering(t *testing.T) {
	hs := NewHistoryStore(newMemoryKV())

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := hs.Append(types.HistoryEntry{
			Code:      fmt.Sprintf("snippet %d", i),
			Language:  "python",
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Result:    sampleResult(),
		})
		if err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	entries, err := hs.List(0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	for i, e := range entries {
		want := fmt.Sprintf("snippet %d", 2-i)
		if e.Code != want {
			t.Errorf("entry %d out of order: got %q, want %q", i, e.Code, want)
		}
	}
}

func TestHistoryStore_ClearAndFindByID(t *testing.T) {
	hs := NewHistoryStore(newMemoryKV())

	stored, err := hs.Append(types.HistoryEntry{Code: "a", Language: "go", Result: sampleResult()})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	found, ok, err := hs.FindByID(stored.ID)
	if err != nil || !ok {
		t.Fatalf("FindByID failed: %v, found=%v", err, ok)
	}
	if found.Code != "a" {
		t.Errorf("FindByID returned wrong entry: %+v", found)
	}

	if _, ok, _ := hs.FindByID("no-such-id"); ok {
		t.Error("FindByID found a nonexistent id")
	}

	if err := hs.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	entries, _ := hs.List(0)
	if len(entries) != 0 {
		t.Errorf("history not empty after Clear: %d entries", len(entries))
	}
}

func TestHistoryStore_OverFileKeyValue(t *testing.T) {
	tempDir := t.TempDir()
	kv := NewFileKeyValue()
	err := kv.Initialize(map[string]string{
		"dataFile":       filepath.Join(tempDir, "history.json"),
		"dataFileFormat": "json",
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer func() { _ = kv.Close() }()

	hs := NewHistoryStore(kv)
	stored, err := hs.Append(types.HistoryEntry{Code: "print(1)", Language: "python", Result: sampleResult()})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	entries, err := hs.List(1)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != stored.ID {
		t.Errorf("entry not round-tripped through file store")
	}
	if entries[0].Result.TimeComplexity.BigO != "O(n)" {
		t.Errorf("result fields lost in round trip: %+v", entries[0].Result)
	}
}

func TestCredentialStore(t *testing.T) {
	cs := NewCredentialStore(newMemoryKV())

	key, err := cs.APIKey()
	if err != nil {
		t.Fatalf("APIKey failed: %v", err)
	}
	if key != "" {
		t.Errorf("expected empty key initially, got %q", key)
	}

	if err := cs.SetAPIKey("  sk-test-123  "); err != nil {
		t.Fatalf("SetAPIKey failed: %v", err)
	}
	key, _ = cs.APIKey()
	if key != "sk-test-123" {
		t.Errorf("stored key mismatch: got %q", key)
	}

	if err := cs.SetAPIKey("   "); err == nil {
		t.Error("expected error for empty key")
	}

	if err := cs.ClearAPIKey(); err != nil {
		t.Fatalf("ClearAPIKey failed: %v", err)
	}
	key, _ = cs.APIKey()
	if key != "" {
		t.Errorf("key still present after clear: %q", key)
	}
}
