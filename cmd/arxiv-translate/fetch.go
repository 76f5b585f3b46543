// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-translate/internal/feed"
	"github.com/pdiddy/arxiv-translate/internal/pipeline"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "List recent papers without translating them",
	Long: `Fetch runs the query and window stages only and prints the selected
papers as a table, or as JSON with --json. Nothing is written to disk.`,
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	jsonOut, _ := cmd.Flags().GetBool("json")

	cfg, log, runID, err := setup(cmd)
	if err != nil {
		return err
	}

	p, err := pipeline.New(*cfg, feed.NewClient(cfg.HTTP, cfg.Query.RootURL), nil, log, os.Stderr, runID)
	if err != nil {
		return err
	}

	collected, err := p.Collect(cmd.Context())
	if err != nil {
		return err
	}

	if jsonOut {
		return pipeline.FormatJSON(collected.Selected, os.Stdout)
	}
	pipeline.FormatTable(collected.Selected, os.Stdout)
	return nil
}

func init() {
	addQueryFlags(fetchCmd)
	fetchCmd.Flags().Bool("json", false, "output records as JSON")

	rootCmd.AddCommand(fetchCmd)
}
