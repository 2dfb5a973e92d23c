package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// app carries the state shared by every command once the root command has
// loaded the config.
type app struct {
	configPath string
	config     *Config
	logger     *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "charkov",
		Short:         "Character-level Markov text generator",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			config, err := LoadConfig(a.configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			a.config = config
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: config.Level()}))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "./charkov.json", "config file (.json or .toml)")

	rootCmd.AddCommand(newGenerateCmd(a))
	rootCmd.AddCommand(newLegacyCmd(a))
	rootCmd.AddCommand(newInspectCmd(a))
	rootCmd.AddCommand(newCorpusCmd(a))
	rootCmd.AddCommand(newHistoryCmd(a))

	return rootCmd
}
