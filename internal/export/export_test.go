// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-translate/pkg/types"
)

func strPtr(s string) *string { return &s }

func sampleTable() types.Table {
	return types.Table{
		Title:     []string{"カーネル法の再考", "注意機構, 再び"},
		Summary:   []string{"要約その1", "複数行の\n要約"},
		Published: []string{"2026-10-12T17:59:59Z", "2026-10-10T08:00:00Z"},
		ArxivURL:  []string{"http://arxiv.org/abs/2610.01234v1", "http://arxiv.org/abs/2610.05678v2"},
		PDFURL:    []*string{strPtr("http://arxiv.org/pdf/2610.01234v1"), nil},
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, Write(path, types.FormatCSV, sampleTable(), "run-1"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "\ufeff"), "missing BOM")

	rows, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), "\ufeff"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{
		"カーネル法の再考", "要約その1", "2026-10-12T17:59:59Z",
		"http://arxiv.org/abs/2610.01234v1", "http://arxiv.org/pdf/2610.01234v1",
	}, rows[1])
	assert.Equal(t, "注意機構, 再び", rows[2][0])
	assert.Equal(t, "複数行の\n要約", rows[2][1])
	assert.Equal(t, "", rows[2][4], "nil pdf_url should be an empty cell")
}

func TestWriteDefaultFormatIsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, Write(path, "", sampleTable(), ""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "title,summary,published,arxiv_url,pdf_url")
}

func TestWriteEmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, Write(path, types.FormatCSV, types.Table{}, ""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\ufefftitle,summary,published,arxiv_url,pdf_url\n", string(data))
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, Write(path, types.FormatJSON, sampleTable(), ""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "カーネル法の再考", rows[0]["title"])
	assert.Equal(t, "http://arxiv.org/pdf/2610.01234v1", rows[0]["pdf_url"])
	assert.Nil(t, rows[1]["pdf_url"])
	assert.Contains(t, rows[1], "pdf_url")
}

func TestWriteYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, Write(path, types.FormatYAML, sampleTable(), ""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var rows []types.Row
	require.NoError(t, yaml.Unmarshal(data, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "注意機構, 再び", rows[1].Title)
	assert.Equal(t, "2026-10-10T08:00:00Z", rows[1].Published)
	assert.Nil(t, rows[1].PDFURL)
	require.NotNil(t, rows[0].PDFURL)
}

func TestWriteSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.db")
	require.NoError(t, Write(path, types.FormatSQLite, sampleTable(), "run-42"))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query(`SELECT position, run_id, title, pdf_url FROM papers ORDER BY position`)
	require.NoError(t, err)
	defer rows.Close()

	type row struct {
		pos   int
		runID string
		title string
		pdf   sql.NullString
	}
	var got []row
	for rows.Next() {
		var r row
		require.NoError(t, rows.Scan(&r.pos, &r.runID, &r.title, &r.pdf))
		got = append(got, r)
	}
	require.NoError(t, rows.Err())
	require.Len(t, got, 2)

	assert.Equal(t, 0, got[0].pos)
	assert.Equal(t, "run-42", got[0].runID)
	assert.Equal(t, "カーネル法の再考", got[0].title)
	assert.True(t, got[0].pdf.Valid)
	assert.False(t, got[1].pdf.Valid)
}

func TestWriteSQLiteReplacesPreviousRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.db")
	require.NoError(t, Write(path, types.FormatSQLite, sampleTable(), "first"))

	one := types.Table{
		Title: []string{"t"}, Summary: []string{"s"}, Published: []string{"p"},
		ArxivURL: []string{"u"}, PDFURL: []*string{nil},
	}
	require.NoError(t, Write(path, types.FormatSQLite, one, "second"))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM papers`).Scan(&count))
	assert.Equal(t, 1, count)

	var runID string
	require.NoError(t, db.QueryRow(`SELECT run_id FROM papers`).Scan(&runID))
	assert.Equal(t, "second", runID)
}

func TestWriteCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.csv")
	require.NoError(t, Write(path, types.FormatCSV, sampleTable(), ""))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestWriteOverwritesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer than nothing"), 0o644))

	require.NoError(t, Write(path, types.FormatCSV, types.Table{}, ""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
}

func TestWriteUnsupportedFormatLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.xlsx")

	err := Write(path, "xlsx", sampleTable(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xlsx")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteEmptyPath(t *testing.T) {
	assert.Error(t, Write("", types.FormatCSV, sampleTable(), ""))
}

func TestWriteAtomicCleansUpOnEncodeError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0o644))

	err := writeAtomic(path, func(w io.Writer) error {
		w.Write([]byte("partial"))
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be removed")
}
