// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package translate translates the title and summary of selected papers
// through a remote Provider, keeping every output column aligned with the
// input order.
package translate

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/arxiv-translate/pkg/types"
)

// lineBreakMarker is a newline followed by two no-break spaces, which the
// provider emits where the source text had an indented line break.
const lineBreakMarker = "\n\u00a0\u00a0"

// Provider abstracts the translation service so tests can supply a mock.
type Provider interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Field names the record field a translation error belongs to.
type Field string

const (
	FieldTitle   Field = "title"
	FieldSummary Field = "summary"
)

// RemoteTranslationError reports a provider failure for one record.
type RemoteTranslationError struct {
	Index int
	Field Field
	Err   error
}

func (e *RemoteTranslationError) Error() string {
	return fmt.Sprintf("translating %s of record %d: %v", e.Field, e.Index, e.Err)
}

func (e *RemoteTranslationError) Unwrap() error {
	return e.Err
}

// Translator runs a Provider over a batch of records.
type Translator struct {
	Provider Provider
	Source   string
	Target   string

	// Concurrency caps in-flight records; values below 1 mean 1.
	Concurrency int

	// Progress receives one line per finished record. Nil discards.
	Progress io.Writer
}

// New returns a Translator configured from cfg.
func New(p Provider, cfg types.TranslationConfig, progress io.Writer) *Translator {
	return &Translator{
		Provider:    p,
		Source:      cfg.Source,
		Target:      cfg.Target,
		Concurrency: cfg.Concurrency,
		Progress:    progress,
	}
}

// Translate translates records and returns the five export columns.
func (t *Translator) Translate(ctx context.Context, records []types.PaperRecord) (types.Table, error) {
	translated, err := t.TranslateRecords(ctx, records)
	if err != nil {
		return types.Table{}, err
	}
	return types.NewTable(translated), nil
}

// TranslateRecords translates title then summary of every record. Results
// are stored by index, so output i always belongs to records[i] whatever
// order tasks finish in. The first failure cancels outstanding work and no
// partial result is returned.
func (t *Translator) TranslateRecords(ctx context.Context, records []types.PaperRecord) ([]types.TranslatedRecord, error) {
	limit := t.Concurrency
	if limit < 1 {
		limit = 1
	}

	out := make([]types.TranslatedRecord, len(records))
	var progressMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			rec := records[i]
			title, err := t.translateText(gctx, rec.Title)
			if err != nil {
				return &RemoteTranslationError{Index: i, Field: FieldTitle, Err: err}
			}
			summary, err := t.translateText(gctx, rec.Summary)
			if err != nil {
				return &RemoteTranslationError{Index: i, Field: FieldSummary, Err: err}
			}

			out[i] = types.TranslatedRecord{
				Title:           title,
				Summary:         summary,
				Published:       rec.Published,
				ArxivURL:        rec.ArxivURL,
				PDFURL:          rec.PDFURL,
				OriginalTitle:   rec.Title,
				OriginalSummary: rec.Summary,
			}

			if t.Progress != nil {
				progressMu.Lock()
				fmt.Fprintf(t.Progress, "No.%d, title:%s\n", i, title)
				progressMu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *Translator) translateText(ctx context.Context, text string) (string, error) {
	translated, err := t.Provider.Translate(ctx, flatten(text), t.Source, t.Target)
	if err != nil {
		return "", err
	}
	return cleanup(translated), nil
}

// flatten joins wrapped feed lines into one line before translation.
func flatten(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

// cleanup normalizes provider formatting artifacts in translated text.
func cleanup(s string) string {
	return strings.ReplaceAll(s, lineBreakMarker, ": ")
}
