// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-translate/internal/config"
	"github.com/pdiddy/arxiv-translate/internal/feed"
	"github.com/pdiddy/arxiv-translate/internal/httputil"
	"github.com/pdiddy/arxiv-translate/internal/pipeline"
	"github.com/pdiddy/arxiv-translate/internal/translate"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, filter, translate, and export recent papers",
	Long: `Run queries arXiv for every keyword, keeps papers published within the
last --days days, translates each title and abstract, and writes the table to
--output. The output file is replaced only when every stage succeeds.

Translation progress is echoed to stdout as "No.<i>, title:<translated>".`,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, log, runID, err := setup(cmd)
	if err != nil {
		return err
	}

	client := feed.NewClient(cfg.HTTP, cfg.Query.RootURL)
	provider, err := translate.NewProvider(cfg.Translation, httputil.NewClient(cfg.HTTP), cfg.HTTP.UserAgent)
	if err != nil {
		return err
	}
	tr := translate.New(provider, cfg.Translation, os.Stdout)

	p, err := pipeline.New(*cfg, client, tr, log, os.Stdout, runID)
	if err != nil {
		return err
	}

	summary, err := p.Run(cmd.Context())
	if err != nil {
		return err
	}
	pipeline.FormatSummary(summary, os.Stdout)
	return nil
}

func init() {
	d := config.Default()
	addQueryFlags(runCmd)
	runCmd.Flags().StringP("output", "o", d.Export.Path, "output file")
	runCmd.Flags().String("format", string(d.Export.Format), "output format: csv, json, yaml, or sqlite")
	runCmd.Flags().String("provider", string(d.Translation.Provider), "translation provider: google or claude")
	runCmd.Flags().Int("concurrency", d.Translation.Concurrency, "records translated in parallel (1 keeps list order)")
	runCmd.Flags().String("source", d.Translation.Source, "source language code")
	runCmd.Flags().String("target", d.Translation.Target, "target language code")
	runCmd.Flags().String("model", d.Translation.Model, "Claude model for the claude provider")

	rootCmd.AddCommand(runCmd)
}
