// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-translate/pkg/types"
)

func TestFormatTable(t *testing.T) {
	pdf := "http://arxiv.org/pdf/2610.01234v1"
	records := []types.PaperRecord{
		{
			Title:     "Sparse Kernels for Online Learning",
			Published: "2026-10-12T09:30:00Z",
			Authors:   []string{"Ada Lovelace", "Alan Turing"},
			PDFURL:    &pdf,
		},
		{
			Title:     strings.Repeat("カーネル", 20),
			Published: "2026-10-10T00:00:00Z",
			Authors:   []string{"Grace Hopper"},
		},
	}

	var buf bytes.Buffer
	FormatTable(records, &buf)
	out := buf.String()

	assert.Contains(t, out, "Sparse Kernels for Online Learning")
	assert.Contains(t, out, "Ada Lovelace et al.")
	assert.Contains(t, out, "Grace Hopper")
	assert.Contains(t, out, "2 papers")

	lines := strings.Split(out, "\n")
	// Header, rule, and both rows share a display width.
	width := runewidth.StringWidth(lines[0])
	assert.Equal(t, width, runewidth.StringWidth(lines[2]))
	assert.Equal(t, width-len("yes")+len("-"), runewidth.StringWidth(lines[3]))
	assert.Contains(t, lines[3], "...")
}

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(nil, &buf)
	assert.Equal(t, "No papers in window.\n", buf.String())
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON([]types.PaperRecord{{Title: "A <b> title", ArxivURL: "u"}}, &buf))

	assert.Contains(t, buf.String(), "A <b> title")
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "u", decoded[0]["arxiv_url"])
}

func TestFormatSummary(t *testing.T) {
	var buf bytes.Buffer
	FormatSummary(Summary{Fetched: 10, Selected: 3, Exported: 3, Path: "out.csv", Format: types.FormatCSV}, &buf)
	assert.Equal(t, "fetched 10, selected 3, exported 3 to out.csv (csv)\n", buf.String())
}

func TestCell(t *testing.T) {
	assert.Equal(t, 10, runewidth.StringWidth(cell("short", 10)))
	assert.Equal(t, 10, runewidth.StringWidth(cell("日本語のとても長いタイトル", 10)))
	assert.Equal(t, "a b       ", cell("a\n  b", 10))
}
