package main

import (
	"fmt"

	"github.com/praetorian-inc/loosejson/pkg/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose    bool
	quiet      bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "loosejson",
	Short: "loosejson - parser for a relaxed superset of JSON",
	Long: `loosejson parses JSON extended with single-quoted strings, trailing commas
and optional // and /* */ comments, and reports exact source positions for
every value and every error.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (debug logging to stderr)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (no error output)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default "+config.DefaultPath+" if present)")

	// Add subcommands
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(grammarCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newLogger returns a development logger when --verbose is set and a no-op
// logger otherwise.
func newLogger() (*zap.Logger, error) {
	if !verbose || quiet {
		return zap.NewNop(), nil
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return logger, nil
}

// loadConfig reads --config when given, otherwise the default file if it
// exists.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	return config.LoadOptional(config.DefaultPath)
}
