package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dsalens/dsalens/store"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// version is the application version.
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dsalens",
	Short: "dsalens analyzes the time and space complexity of code snippets.",
	Long: `dsalens sends code to an LLM for Big-O complexity analysis and keeps
a local history of past analyses. It can be used directly from the
command line or as a local HTTP API for editor and browser tooling.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.dsalens/.dsalens.yaml or $HOME/.dsalens.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// GetDataFilePath returns the full path to the local data file.
func GetDataFilePath() string {
	config := GetConfig()
	return filepath.Join(config.Project.RootDir, config.Data.File)
}

// GetKeyValue initializes and returns the file-backed key-value store.
// The caller must Close it.
func GetKeyValue() (store.KeyValue, error) {
	config := GetConfig()
	dataFilePath := GetDataFilePath()

	kv := store.NewFileKeyValue()
	err := kv.Initialize(map[string]string{
		"dataFile":       dataFilePath,
		"dataFileFormat": config.Data.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store at %s: %w", dataFilePath, err)
	}
	return kv, nil
}
