// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/arxiv-translate/pkg/types"
)

// writeSQLite builds a fresh database in a temp file and renames it over
// path. The destination holds exactly one run.
func writeSQLite(path string, table types.Table, runID string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	tmp.Close()

	if err := fillDatabase(tmpName, table, runID); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return commit(tmpName, path)
}

func fillDatabase(dbPath string, table types.Table, runID string) error {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=DELETE")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := createSchema(db); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO papers
		(position, run_id, title, summary, published, arxiv_url, pdf_url)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < table.Len(); i++ {
		var pdf sql.NullString
		if p := table.PDFURL[i]; p != nil {
			pdf = sql.NullString{String: *p, Valid: true}
		}
		if _, err := stmt.Exec(i, runID, table.Title[i], table.Summary[i],
			table.Published[i], table.ArxivURL[i], pdf); err != nil {
			return fmt.Errorf("inserting row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

func createSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS papers (
			position INTEGER PRIMARY KEY,
			run_id TEXT NOT NULL,
			title TEXT NOT NULL,
			summary TEXT NOT NULL,
			published TEXT NOT NULL,
			arxiv_url TEXT NOT NULL,
			pdf_url TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_published ON papers(published)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}
