package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadAnalyzeInput_FileWithDetectedLanguage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.py")
	if err := os.WriteFile(path, []byte("print(1)\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	analyzeLanguage = ""
	code, language, err := readAnalyzeInput([]string{path})
	if err != nil {
		t.Fatalf("readAnalyzeInput failed: %v", err)
	}
	if language != "python" {
		t.Errorf("language not detected from extension: %q", language)
	}
	if code != "print(1)\n" {
		t.Errorf("code mismatch: %q", code)
	}
}

func TestReadAnalyzeInput_FlagOverridesExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.txt")
	if err := os.WriteFile(path, []byte("x = 1"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	analyzeLanguage = "Python"
	defer func() { analyzeLanguage = "" }()

	_, language, err := readAnalyzeInput([]string{path})
	if err != nil {
		t.Fatalf("readAnalyzeInput failed: %v", err)
	}
	if language != "python" {
		t.Errorf("flag language not normalized: %q", language)
	}
}

func TestReadAnalyzeInput_UnknownExtensionNeedsFlag(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.weird")
	if err := os.WriteFile(path, []byte("x = 1"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	analyzeLanguage = ""
	if _, _, err := readAnalyzeInput([]string{path}); err == nil {
		t.Error("expected error for undetectable language")
	}
}

func TestReadAnalyzeInput_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.go")
	if err := os.WriteFile(path, []byte("   \n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	analyzeLanguage = ""
	if _, _, err := readAnalyzeInput([]string{path}); err == nil {
		t.Error("expected error for empty code")
	}
}
