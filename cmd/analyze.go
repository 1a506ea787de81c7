package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dsalens/dsalens/internal/ui"
	"github.com/dsalens/dsalens/llm"
	"github.com/dsalens/dsalens/prompts"
	"github.com/dsalens/dsalens/store"
	"github.com/dsalens/dsalens/types"
)

var (
	analyzeLanguage string
	analyzeContext  string
	analyzeType     string
	analyzeNoSave   bool
)

// languageByExtension maps common source file extensions to the
// language name sent with the analysis.
var languageByExtension = map[string]string{
	".go":    "go",
	".py":    "python",
	".js":    "javascript",
	".ts":    "typescript",
	".java":  "java",
	".c":     "c",
	".h":     "c",
	".cpp":   "cpp",
	".cc":    "cpp",
	".hpp":   "cpp",
	".rs":    "rust",
	".rb":    "ruby",
	".kt":    "kotlin",
	".swift": "swift",
	".cs":    "csharp",
	".php":   "php",
	".scala": "scala",
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze the complexity of a code snippet",
	Long: `Analyze sends code to the configured LLM and prints its time and
space complexity. Code is read from the given file, or from stdin when
no file is provided. The result is recorded in the local history unless
--no-save is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, language, err := readAnalyzeInput(args)
		if err != nil {
			return err
		}

		analysisType := types.AnalysisType(analyzeType)
		if !analysisType.Valid() {
			return fmt.Errorf("unsupported analysis type %q (use time, space, or both)", analyzeType)
		}

		config := GetConfig()

		kv, err := GetKeyValue()
		if err != nil {
			return err
		}
		defer func() { _ = kv.Close() }()

		apiKey, err := resolveAPIKey(store.NewCredentialStore(kv))
		if err != nil {
			return err
		}

		provider, err := llm.NewProvider(&config.LLM)
		if err != nil {
			return err
		}

		systemPrompt, err := prompts.GetPrompt(prompts.KeyAnalyzeSystem, templatesDirPath())
		if err != nil {
			return fmt.Errorf("failed to load system prompt: %w", err)
		}

		req := types.AnalysisRequest{
			Code:           code,
			Language:       language,
			ProblemContext: analyzeContext,
			AnalysisType:   analysisType,
		}

		fmt.Println(ui.StyleSubtle.Render(fmt.Sprintf("Analyzing %s code (%s)...", language, analysisType)))

		result, err := provider.AnalyzeComplexity(cmd.Context(), systemPrompt, req, apiKey)
		if err != nil {
			return describeAnalysisError(err)
		}

		fmt.Println(ui.RenderResult(result, analysisType))

		if !analyzeNoSave {
			history := store.NewHistoryStore(kv)
			entry, err := history.Append(types.HistoryEntry{
				Code:     code,
				Language: language,
				Result:   result,
			})
			if err != nil {
				return fmt.Errorf("analysis succeeded but saving history failed: %w", err)
			}
			fmt.Println(ui.StyleSubtle.Render("Saved to history as " + ui.TruncateID(entry.ID)))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeLanguage, "language", "l", "", "language of the code (detected from file extension if omitted)")
	analyzeCmd.Flags().StringVar(&analyzeContext, "context", "", "optional problem context, e.g. the exercise statement")
	analyzeCmd.Flags().StringVarP(&analyzeType, "type", "t", "both", "analysis type: time, space, or both")
	analyzeCmd.Flags().BoolVar(&analyzeNoSave, "no-save", false, "do not record the analysis in history")
}

// readAnalyzeInput loads the code from the file argument or stdin and
// settles the language, from the flag first and the file extension
// second.
func readAnalyzeInput(args []string) (code, language string, err error) {
	language = strings.ToLower(strings.TrimSpace(analyzeLanguage))

	if len(args) == 1 {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		code = string(raw)
		if language == "" {
			language = languageByExtension[strings.ToLower(filepath.Ext(args[0]))]
		}
	} else {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		code = string(raw)
	}

	if strings.TrimSpace(code) == "" {
		return "", "", fmt.Errorf("no code to analyze")
	}
	if language == "" {
		return "", "", fmt.Errorf("could not determine language; pass --language")
	}
	return code, language, nil
}

// resolveAPIKey settles the key in priority order: config (which
// includes DSALENS_LLM_APIKEY), the stored credential, then
// OPENAI_API_KEY.
func resolveAPIKey(creds *store.CredentialStore) (string, error) {
	config := GetConfig()
	if key := strings.TrimSpace(config.LLM.APIKey); key != "" {
		return key, nil
	}
	if key, err := creds.APIKey(); err != nil {
		return "", err
	} else if key != "" {
		return key, nil
	}
	if key := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); key != "" {
		return key, nil
	}
	return "", nil
}

func templatesDirPath() string {
	config := GetConfig()
	if config.Project.TemplatesDir == "" {
		return ""
	}
	if filepath.IsAbs(config.Project.TemplatesDir) {
		return config.Project.TemplatesDir
	}
	return filepath.Join(config.Project.RootDir, config.Project.TemplatesDir)
}

// describeAnalysisError adds a hint for the failure kinds a user can
// act on directly.
func describeAnalysisError(err error) error {
	switch {
	case types.HasCode(err, types.CodeMissingCredential):
		return fmt.Errorf("%w\nSet one with 'dsalens key set', DSALENS_LLM_APIKEY, or OPENAI_API_KEY", err)
	case types.HasCode(err, types.CodeSchemaError):
		return fmt.Errorf("the model returned an unusable response: %w\nRe-run the analysis to try again", err)
	default:
		return err
	}
}
