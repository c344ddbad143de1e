package main

import (
	"fmt"
	"os"

	"github.com/ruminaider/rosterpick/internal/config"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var (
	cfgFile  string
	logLevel string
	logFile  string

	// cfg is loaded once per invocation by PersistentPreRunE.
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "rosterpick",
	Short: "Pick favorite tasks, permitted users and assigned resources",
	Long:  "rosterpick edits ordered selections (favorite tasks, permitted users, assigned resources) with a two-pane transfer picker and saves them to a local store.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
	RunE:          runMainMenu,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	// Skip config loading; version must work with a broken config.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "rosterpick %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.rosterpick/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads the config and installs the logger. Flags override config.
func setup() error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.Log.Level = logLevel
	}
	if logFile != "" {
		loaded.Log.File = logFile
	}
	if err := installLogger(loaded.Log); err != nil {
		return err
	}
	cfg = loaded
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
