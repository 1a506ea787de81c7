// Package scaffold creates the on-disk project layout used by the CLI.
package scaffold

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/dsalens/dsalens/prompts"
	"github.com/dsalens/dsalens/types"
)

const (
	configFileName    = ".dsalens.yaml"
	promptFileName    = "analyze_system_prompt.txt"
	templatesDirName  = "templates"
	defaultConfigPerm = 0o644
	defaultDirPerm    = 0o755
)

// Result reports what Init actually created.
type Result struct {
	ConfigPath    string
	TemplatesPath string
	Created       []string
}

// Scaffolder writes the project skeleton onto an injected filesystem.
type Scaffolder struct {
	fs afero.Fs
}

func New(fs afero.Fs) *Scaffolder {
	return &Scaffolder{fs: fs}
}

// Init creates the project root, a starter config file, and the
// templates directory with the default system prompt for editing.
// Existing files are left untouched.
func (s *Scaffolder) Init(rootDir string, config *types.AppConfig) (Result, error) {
	res := Result{
		ConfigPath:    filepath.Join(rootDir, configFileName),
		TemplatesPath: filepath.Join(rootDir, templatesDirName),
	}

	if err := s.fs.MkdirAll(rootDir, defaultDirPerm); err != nil {
		return res, fmt.Errorf("failed to create %s: %w", rootDir, err)
	}
	if err := s.fs.MkdirAll(res.TemplatesPath, defaultDirPerm); err != nil {
		return res, fmt.Errorf("failed to create %s: %w", res.TemplatesPath, err)
	}

	created, err := s.writeIfAbsent(res.ConfigPath, starterConfig(config))
	if err != nil {
		return res, err
	}
	if created {
		res.Created = append(res.Created, res.ConfigPath)
	}

	promptPath := filepath.Join(res.TemplatesPath, promptFileName)
	created, err = s.writeIfAbsent(promptPath, []byte(prompts.AnalyzeSystemPrompt))
	if err != nil {
		return res, err
	}
	if created {
		res.Created = append(res.Created, promptPath)
	}

	return res, nil
}

func (s *Scaffolder) writeIfAbsent(path string, content []byte) (bool, error) {
	exists, err := afero.Exists(s.fs, path)
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", path, err)
	}
	if exists {
		return false, nil
	}
	if err := afero.WriteFile(s.fs, path, content, defaultConfigPerm); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}

// starterConfig renders a config file seeded with the effective
// settings, so a fresh project documents its own defaults.
func starterConfig(config *types.AppConfig) []byte {
	doc := map[string]any{
		"data": map[string]any{
			"file":   config.Data.File,
			"format": config.Data.Format,
		},
		"llm": map[string]any{
			"provider":              config.LLM.Provider,
			"modelName":             config.LLM.ModelName,
			"maxOutputTokens":       config.LLM.MaxOutputTokens,
			"temperature":           config.LLM.Temperature,
			"requestTimeoutSeconds": config.LLM.RequestTimeoutSeconds,
		},
		"serve": map[string]any{
			"addr": config.Serve.Addr,
		},
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		// The document above is static; a marshal failure is a bug.
		panic(err)
	}
	return out
}
