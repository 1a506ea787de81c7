package cmd

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/dsalens/dsalens/internal/ui"
	"github.com/dsalens/dsalens/store"
	"github.com/dsalens/dsalens/types"
)

var (
	historyLimit int
	historyYes   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past analyses",
	Long: `History lists, shows, and clears the locally stored analyses. At most
the 50 most recent analyses are kept; older ones are discarded
automatically.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent analyses, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		kv, err := GetKeyValue()
		if err != nil {
			return err
		}
		defer func() { _ = kv.Close() }()

		entries, err := store.NewHistoryStore(kv).List(historyLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println(ui.StyleSubtle.Render("No analyses recorded yet."))
			return nil
		}

		fmt.Print(ui.HistoryTable(entries))
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one analysis in full",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kv, err := GetKeyValue()
		if err != nil {
			return err
		}
		defer func() { _ = kv.Close() }()

		history := store.NewHistoryStore(kv)

		var entry types.HistoryEntry
		if len(args) == 1 {
			entry, err = findEntryByPrefix(history, args[0])
			if err != nil {
				return err
			}
		} else {
			entry, err = selectEntryInteractive(history)
			if err != nil {
				return err
			}
		}

		fmt.Println(ui.StyleSubtle.Render(fmt.Sprintf("%s  %s  %s",
			ui.TruncateID(entry.ID), entry.Timestamp.Local().Format("2006-01-02 15:04"), entry.Language)))
		fmt.Println()
		fmt.Println(ui.StyleSectionTitle.Render("Code"))
		fmt.Println(entry.Code)
		fmt.Println(ui.RenderResult(entry.Result, types.AnalysisBoth))
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stored analyses",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !historyYes {
			prompt := promptui.Prompt{
				Label:     "Delete all stored analyses",
				IsConfirm: true,
			}
			if _, err := prompt.Run(); err != nil {
				fmt.Println(ui.StyleSubtle.Render("Aborted."))
				return nil
			}
		}

		kv, err := GetKeyValue()
		if err != nil {
			return err
		}
		defer func() { _ = kv.Close() }()

		if err := store.NewHistoryStore(kv).Clear(); err != nil {
			return err
		}
		fmt.Println(ui.StyleSuccess.Render("History cleared."))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)

	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "maximum entries to list (0 lists all retained entries)")
	historyClearCmd.Flags().BoolVarP(&historyYes, "yes", "y", false, "skip the confirmation prompt")
}

// findEntryByPrefix accepts a full id or an unambiguous prefix, as
// printed by 'history list'.
func findEntryByPrefix(history *store.HistoryStore, idOrPrefix string) (types.HistoryEntry, error) {
	entry, found, err := history.FindByID(idOrPrefix)
	if err != nil {
		return types.HistoryEntry{}, err
	}
	if found {
		return entry, nil
	}

	entries, err := history.List(0)
	if err != nil {
		return types.HistoryEntry{}, err
	}
	var matches []types.HistoryEntry
	for _, e := range entries {
		if strings.HasPrefix(e.ID, idOrPrefix) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return types.HistoryEntry{}, fmt.Errorf("no analysis with id %s", idOrPrefix)
	default:
		return types.HistoryEntry{}, fmt.Errorf("id prefix %s is ambiguous (%d matches)", idOrPrefix, len(matches))
	}
}

// selectEntryInteractive presents a prompt to pick one stored analysis.
func selectEntryInteractive(history *store.HistoryStore) (types.HistoryEntry, error) {
	entries, err := history.List(0)
	if err != nil {
		return types.HistoryEntry{}, err
	}
	if len(entries) == 0 {
		return types.HistoryEntry{}, fmt.Errorf("no analyses recorded yet")
	}

	type row struct {
		ID      string
		When    string
		Lang    string
		Preview string
	}
	rows := make([]row, len(entries))
	for i, e := range entries {
		rows[i] = row{
			ID:      ui.TruncateID(e.ID),
			When:    e.Timestamp.Local().Format("2006-01-02 15:04"),
			Lang:    e.Language,
			Preview: ui.SnippetPreview(e.Code, 48),
		}
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   `> {{ .When | cyan }} {{ .Lang }} {{ .Preview | faint }}`,
		Inactive: `  {{ .When | faint }} {{ .Lang | faint }} {{ .Preview | faint }}`,
		Selected: `{{ "✔" | green }} {{ .When }} {{ .Lang }}`,
	}

	searcher := func(input string, index int) bool {
		r := rows[index]
		input = strings.ToLower(input)
		return strings.Contains(strings.ToLower(r.Preview), input) ||
			strings.Contains(strings.ToLower(r.Lang), input) ||
			strings.Contains(r.ID, input)
	}

	prompt := promptui.Select{
		Label:     "Select an analysis",
		Items:     rows,
		Templates: templates,
		Searcher:  searcher,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return types.HistoryEntry{}, err
	}
	return entries[i], nil
}
