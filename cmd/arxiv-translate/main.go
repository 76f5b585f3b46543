// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxiv-translate CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-translate/internal/config"
	"github.com/pdiddy/arxiv-translate/internal/logging"
	"github.com/pdiddy/arxiv-translate/internal/secrets"
	"github.com/pdiddy/arxiv-translate/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfgFile string
	verbose bool

	// loadedSecrets holds keys read from .secrets/ at startup.
	loadedSecrets map[string]string

	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "arxiv-translate",
	Short: "Fetch recent arXiv papers and export translated titles and abstracts",
	Long: `arxiv-translate queries the arXiv API for one or more search keywords,
keeps the papers submitted within a recent window, translates each title and
abstract, and writes the result as CSV (or JSON, YAML, SQLite).

Settings come from arxiv-translate.yaml, ARXIV_TRANSLATE_* environment
variables, and flags, in increasing order of precedence.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.New(os.Stderr, "info", verbose)

		s, err := secrets.Load(secrets.DefaultDir, logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			logger.Debug("loaded secrets", "names", secrets.Names(s))
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./arxiv-translate.yaml or ~/.config/arxiv-translate/arxiv-translate.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// setup resolves configuration for cmd and returns it with a run-scoped
// logger.
func setup(cmd *cobra.Command) (*types.PipelineConfig, *slog.Logger, string, error) {
	cfg, err := config.Load(config.Options{
		File:    cfgFile,
		Flags:   cmd.Flags(),
		Secrets: loadedSecrets,
	})
	if err != nil {
		return nil, nil, "", fmt.Errorf("loading config: %w", err)
	}

	runID := uuid.NewString()
	log := logging.New(os.Stderr, cfg.Logging.Level, verbose).With("run_id", runID)
	log.Debug("configuration loaded",
		"keywords", cfg.Query.Keywords,
		"days", cfg.Window.Days,
		"timezone", cfg.Window.Timezone,
		"provider", cfg.Translation.Provider,
		"output", cfg.Export.Path,
		"format", cfg.Export.Format,
	)
	return cfg, log, runID, nil
}

// addQueryFlags registers the flags shared by run and fetch. Defaults
// mirror config defaults so --help shows effective values.
func addQueryFlags(cmd *cobra.Command) {
	d := config.Default()
	f := cmd.Flags()
	f.StringArray("keyword", nil, fmt.Sprintf("search expression, repeatable (default %q)", d.Query.Keywords))
	f.Int("days", d.Window.Days, "window length in days, counted back from now")
	f.String("timezone", d.Window.Timezone, "IANA timezone the local clock is read in")
	f.Int("max-results", d.Query.MaxResults, "maximum results per keyword")
	f.Int("start", d.Query.Start, "result offset")
	f.Bool("debug", d.Window.Debug, "print window bounds and raw timestamps")
	f.Bool("no-prune", false, "keep provider-internal fields on records")
	f.Duration("timeout", d.HTTP.Timeout, "HTTP request timeout")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
