package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"inquest/internal/config"
	"inquest/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	config    string
	logLevel  string
	logFormat string
}

var rootCmd = &cobra.Command{
	Use:   "inquest",
	Short: "Score transcribed interview responses with language models",
	Long: "Inquest segments interview transcripts into topical clusters,\n" +
		"scores each cluster with an external model, and consolidates\n" +
		"per-run results into one table per respondent.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logging.Init(rootFlags.logLevel, rootFlags.logFormat)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&rootFlags.config, "config", "c", "inquest.yaml", "Pipeline config file (YAML or JSON)")
	pf.StringVar(&rootFlags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(segmentCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(consolidateCmd)
	rootCmd.Version = version
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFromPath(rootFlags.config)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", rootFlags.config, err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
