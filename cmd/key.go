package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dsalens/dsalens/internal/ui"
	"github.com/dsalens/dsalens/store"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the stored analysis API key",
	Long: `Key stores the OpenAI API key used for analyses in the local data
file. A key from the config file or environment always takes precedence
over the stored one.`,
}

var keySetCmd = &cobra.Command{
	Use:   "set [key]",
	Short: "Store an API key",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var key string
		if len(args) == 1 {
			key = args[0]
		} else {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return fmt.Errorf("no key argument given and stdin is not a terminal")
			}
			prompt := promptui.Prompt{
				Label: "API key",
				Mask:  '*',
				Validate: func(input string) error {
					if strings.TrimSpace(input) == "" {
						return fmt.Errorf("key must not be empty")
					}
					return nil
				},
			}
			entered, err := prompt.Run()
			if err != nil {
				return err
			}
			key = entered
		}

		kv, err := GetKeyValue()
		if err != nil {
			return err
		}
		defer func() { _ = kv.Close() }()

		if err := store.NewCredentialStore(kv).SetAPIKey(key); err != nil {
			return err
		}
		fmt.Println(ui.StyleSuccess.Render("API key stored."))
		return nil
	},
}

var keyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored API key, masked",
	RunE: func(cmd *cobra.Command, args []string) error {
		kv, err := GetKeyValue()
		if err != nil {
			return err
		}
		defer func() { _ = kv.Close() }()

		key, err := store.NewCredentialStore(kv).APIKey()
		if err != nil {
			return err
		}
		if key == "" {
			fmt.Println(ui.StyleSubtle.Render("No API key stored."))
			return nil
		}
		fmt.Println(maskKey(key))
		return nil
	},
}

var keyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		kv, err := GetKeyValue()
		if err != nil {
			return err
		}
		defer func() { _ = kv.Close() }()

		if err := store.NewCredentialStore(kv).ClearAPIKey(); err != nil {
			return err
		}
		fmt.Println(ui.StyleSuccess.Render("API key removed."))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keyCmd)
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyShowCmd)
	keyCmd.AddCommand(keyClearCmd)
}

// maskKey keeps enough of the key to recognize it without printing it.
func maskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:3] + strings.Repeat("*", len(key)-7) + key[len(key)-4:]
}
