// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline wires the stages of a run together: query each keyword,
// normalize, select the recent window, translate, and export.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/pdiddy/arxiv-translate/internal/export"
	"github.com/pdiddy/arxiv-translate/internal/feed"
	"github.com/pdiddy/arxiv-translate/internal/logging"
	"github.com/pdiddy/arxiv-translate/internal/window"
	"github.com/pdiddy/arxiv-translate/pkg/types"
)

// Fetcher queries the feed and returns normalized records.
// *feed.Client satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, p feed.Params, prune bool) ([]types.PaperRecord, error)
}

// Translator turns selected records into export columns.
// *translate.Translator satisfies it.
type Translator interface {
	Translate(ctx context.Context, records []types.PaperRecord) (types.Table, error)
}

// Pipeline runs one configured retrieval and translation pass.
type Pipeline struct {
	Config     types.PipelineConfig
	Fetcher    Fetcher
	Translator Translator
	Location   *time.Location

	// Now returns the wall clock; tests pin it.
	Now func() time.Time

	// Out receives the window debug dump. Nil discards.
	Out io.Writer

	Logger *slog.Logger
	RunID  string
}

// Summary reports what a run produced.
type Summary struct {
	RunID    string             `json:"run_id"`
	Fetched  int                `json:"fetched"`
	Selected int                `json:"selected"`
	Exported int                `json:"exported"`
	Path     string             `json:"path"`
	Format   types.ExportFormat `json:"format"`
}

// Collection is the output of the query and select stages.
type Collection struct {
	Window   window.Window
	Fetched  int
	Selected []types.PaperRecord
}

// New returns a Pipeline for cfg. The window timezone is resolved here so
// a bad zone fails before any request is made.
func New(cfg types.PipelineConfig, f Fetcher, tr Translator, logger *slog.Logger, out io.Writer, runID string) (*Pipeline, error) {
	loc, err := window.LoadLocation(cfg.Window.Timezone)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Pipeline{
		Config:     cfg,
		Fetcher:    f,
		Translator: tr,
		Location:   loc,
		Now:        time.Now,
		Out:        out,
		Logger:     logger,
		RunID:      runID,
	}, nil
}

// Collect queries every keyword and keeps the records inside the window.
// Selections are concatenated in keyword order. The window is computed
// once, so all keywords share the same bounds.
func (p *Pipeline) Collect(ctx context.Context) (Collection, error) {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	w := window.New(now(), p.Config.Window.Days, p.Location)

	var out Collection
	out.Window = w
	for _, keyword := range p.Config.Query.Keywords {
		params := feed.ParamsFromConfig(keyword, p.Config.Query)
		p.Logger.Debug("querying feed", "keyword", keyword, "start", params.Start, "max_results", params.MaxResults)

		records, err := p.Fetcher.Fetch(ctx, params, p.Config.Query.Prune)
		if err != nil {
			return Collection{}, fmt.Errorf("keyword %q: %w", keyword, err)
		}

		selected := window.Select(records, w, p.Config.Window.Debug, p.Out)
		p.Logger.Info("keyword fetched", "keyword", keyword, "fetched", len(records), "selected", len(selected))

		out.Fetched += len(records)
		out.Selected = append(out.Selected, selected...)
	}
	return out, nil
}

// Run executes the full pipeline. Any stage error aborts the run before
// the output file is touched.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	summary := Summary{
		RunID:  p.RunID,
		Path:   p.Config.Export.Path,
		Format: p.Config.Export.Format,
	}

	collected, err := p.Collect(ctx)
	if err != nil {
		return summary, err
	}
	summary.Fetched = collected.Fetched
	summary.Selected = len(collected.Selected)

	p.Logger.Info("translating", "records", summary.Selected,
		"provider", p.Config.Translation.Provider, "concurrency", p.Config.Translation.Concurrency)
	table, err := p.Translator.Translate(ctx, collected.Selected)
	if err != nil {
		return summary, fmt.Errorf("translating: %w", err)
	}

	if err := export.Write(p.Config.Export.Path, p.Config.Export.Format, table, p.RunID); err != nil {
		return summary, fmt.Errorf("exporting: %w", err)
	}
	summary.Exported = table.Len()

	p.Logger.Info("run complete",
		"fetched", summary.Fetched,
		"selected", summary.Selected,
		"exported", summary.Exported,
		"path", summary.Path,
		"duration", time.Since(start).Round(time.Millisecond))
	return summary, nil
}
