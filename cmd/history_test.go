package cmd

import (
	"path/filepath"
	"testing"

	"github.com/dsalens/dsalens/store"
	"github.com/dsalens/dsalens/types"
)

func testHistory(t *testing.T) *store.HistoryStore {
	t.Helper()
	kv := store.NewFileKeyValue()
	err := kv.Initialize(map[string]string{
		"dataFile":       filepath.Join(t.TempDir(), "history.json"),
		"dataFileFormat": "json",
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return store.NewHistoryStore(kv)
}

func TestFindEntryByPrefix(t *testing.T) {
	history := testHistory(t)

	first, err := history.Append(types.HistoryEntry{ID: "aaaa1111-0000", Code: "a", Language: "go"})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if _, err := history.Append(types.HistoryEntry{ID: "aabb2222-0000", Code: "b", Language: "go"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	// Full id
	entry, err := findEntryByPrefix(history, first.ID)
	if err != nil || entry.Code != "a" {
		t.Errorf("full id lookup failed: %v, %+v", err, entry)
	}

	// Unambiguous prefix
	entry, err = findEntryByPrefix(history, "aaaa")
	if err != nil || entry.Code != "a" {
		t.Errorf("prefix lookup failed: %v, %+v", err, entry)
	}

	// Ambiguous prefix
	if _, err := findEntryByPrefix(history, "aa"); err == nil {
		t.Error("expected error for ambiguous prefix")
	}

	// No match
	if _, err := findEntryByPrefix(history, "zzzz"); err == nil {
		t.Error("expected error for unknown id")
	}
}

func TestMaskKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"sk-0123456789abcdef", "sk-************cdef"},
		{"short", "*****"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := maskKey(tc.input); got != tc.expected {
			t.Errorf("maskKey(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}
