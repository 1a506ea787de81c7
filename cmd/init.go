package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dsalens/dsalens/internal/scaffold"
	"github.com/dsalens/dsalens/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the project config and templates directory",
	Long: `Init creates the .dsalens directory with a starter config file and a
templates directory holding the default system prompt. Existing files
are never overwritten.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := GetConfig()

		res, err := scaffold.New(afero.NewOsFs()).Init(config.Project.RootDir, config)
		if err != nil {
			return err
		}

		if len(res.Created) == 0 {
			fmt.Println(ui.StyleSubtle.Render("Already initialized; nothing to do."))
			return nil
		}
		for _, path := range res.Created {
			fmt.Println(ui.StyleSuccess.Render("Created " + path))
		}
		fmt.Println(ui.StyleSubtle.Render("Edit " + res.TemplatesPath + "/analyze_system_prompt.txt to customize the prompt."))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
