// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/pdiddy/arxiv-translate/pkg/types"
)

const (
	titleWidth   = 60
	authorsWidth = 24
)

// FormatTable writes selected records as a column-aligned table. Widths
// are measured in terminal cells so CJK titles line up.
func FormatTable(records []types.PaperRecord, w io.Writer) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No papers in window.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-20s  %s  %s  %s\n",
		"No.", "Published",
		runewidth.FillRight("Title", titleWidth),
		runewidth.FillRight("Authors", authorsWidth),
		"PDF")
	fmt.Fprintln(w, strings.Repeat("-", 4+2+20+2+titleWidth+2+authorsWidth+2+3))

	for i, r := range records {
		pdf := "-"
		if r.PDFURL != nil {
			pdf = "yes"
		}
		fmt.Fprintf(w, "%-4d  %-20s  %s  %s  %s\n",
			i, r.Published,
			cell(r.Title, titleWidth),
			cell(formatAuthors(r.Authors), authorsWidth),
			pdf)
	}

	fmt.Fprintf(w, "\n%d papers\n", len(records))
}

// FormatJSON writes records as indented JSON.
func FormatJSON(records []types.PaperRecord, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(records)
}

// FormatSummary writes the one-line result of a run.
func FormatSummary(s Summary, w io.Writer) {
	fmt.Fprintf(w, "fetched %d, selected %d, exported %d to %s (%s)\n",
		s.Fetched, s.Selected, s.Exported, s.Path, s.Format)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return authors[0]
	default:
		return authors[0] + " et al."
	}
}

// cell flattens s to one line, truncates it to width cells, and pads it.
func cell(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	return runewidth.FillRight(runewidth.Truncate(s, width, "..."), width)
}
