// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes a translated Table to disk as CSV, JSON, YAML or
// SQLite. Every format is written to a temporary file in the destination
// directory and renamed into place, so a failed run never leaves a
// truncated file behind.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/arxiv-translate/pkg/types"
)

// Header is the column order shared by every format.
var Header = []string{"title", "summary", "published", "arxiv_url", "pdf_url"}

// Write serializes table to path in the given format. runID is recorded
// by formats that carry provenance (sqlite).
func Write(path string, format types.ExportFormat, table types.Table, runID string) error {
	if path == "" {
		return fmt.Errorf("export path is empty")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	switch format {
	case types.FormatCSV, "":
		return writeAtomic(path, func(w io.Writer) error { return writeCSV(w, table) })
	case types.FormatJSON:
		return writeAtomic(path, func(w io.Writer) error { return writeJSON(w, table) })
	case types.FormatYAML:
		return writeAtomic(path, func(w io.Writer) error { return writeYAML(w, table) })
	case types.FormatSQLite:
		return writeSQLite(path, table, runID)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// writeAtomic streams encode's output to a temp file next to path, then
// renames it over path.
func writeAtomic(path string, encode func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := encode(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	return commit(tmpName, path)
}

func commit(tmpName, path string) error {
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming into place: %w", err)
	}
	return nil
}

func pdfCell(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
