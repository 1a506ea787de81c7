package scaffold

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/dsalens/dsalens/types"
)

func testConfig() *types.AppConfig {
	return &types.AppConfig{
		Data: types.DataConfig{File: "history.json", Format: "json"},
		LLM: types.LLMConfig{
			Provider: "openai", ModelName: "gpt-4",
			MaxOutputTokens: 2000, Temperature: 0.1, RequestTimeoutSeconds: 60,
		},
		Serve: types.ServeConfig{Addr: "127.0.0.1:8440"},
	}
}

func TestInit_CreatesLayout(t *testing.T) {
	fs := afero.NewMemMapFs()

	res, err := New(fs).Init("/project/.dsalens", testConfig())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if len(res.Created) != 2 {
		t.Fatalf("expected 2 created files, got %v", res.Created)
	}

	raw, err := afero.ReadFile(fs, res.ConfigPath)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if !strings.Contains(string(raw), "modelName: gpt-4") {
		t.Errorf("config missing model name:\n%s", raw)
	}
	if !strings.Contains(string(raw), "format: json") {
		t.Errorf("config missing data format:\n%s", raw)
	}

	promptRaw, err := afero.ReadFile(fs, filepath.Join(res.TemplatesPath, "analyze_system_prompt.txt"))
	if err != nil {
		t.Fatalf("prompt template not written: %v", err)
	}
	if !strings.Contains(string(promptRaw), "expert algorithm analyst") {
		t.Errorf("prompt template does not hold the default prompt")
	}
}

func TestInit_DoesNotOverwrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	configPath := "/project/.dsalens/.dsalens.yaml"
	_ = fs.MkdirAll("/project/.dsalens", 0o755)
	_ = afero.WriteFile(fs, configPath, []byte("data:\n  format: toml\n"), 0o644)

	res, err := New(fs).Init("/project/.dsalens", testConfig())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	raw, _ := afero.ReadFile(fs, configPath)
	if !strings.Contains(string(raw), "format: toml") {
		t.Errorf("existing config was overwritten:\n%s", raw)
	}
	for _, created := range res.Created {
		if created == configPath {
			t.Errorf("existing config reported as created")
		}
	}
}

func TestInit_Idempotent(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs)

	if _, err := s.Init("/p/.dsalens", testConfig()); err != nil {
		t.Fatalf("first Init failed: %v", err)
	}
	res, err := s.Init("/p/.dsalens", testConfig())
	if err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	if len(res.Created) != 0 {
		t.Errorf("second Init created files: %v", res.Created)
	}
}
