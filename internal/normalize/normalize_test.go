// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"testing"
	"time"

	"github.com/mmcdole/gofeed/atom"
	ext "github.com/mmcdole/gofeed/extensions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-translate/pkg/types"
)

func testEntry() *atom.Entry {
	published := time.Date(2026, 10, 12, 17, 59, 58, 0, time.UTC)
	updated := published.Add(time.Hour)
	return &atom.Entry{
		ID:              "http://arxiv.org/abs/2610.01234v1",
		Title:           "Sparse Kernels for\n  Online Learning\n",
		Summary:         "We study kernels.\nThey are sparse.\n\n",
		Published:       "2026-10-12T17:59:58Z",
		PublishedParsed: &published,
		Updated:         "2026-10-12T18:59:58Z",
		UpdatedParsed:   &updated,
		Authors: []*atom.Person{
			{Name: "Ada Lovelace"},
			{Name: "Alan Turing"},
		},
		Links: []*atom.Link{
			{Href: "http://arxiv.org/abs/2610.01234v1", Rel: "alternate", Type: "text/html"},
			{Href: "http://arxiv.org/pdf/2610.01234v1", Rel: "related", Type: "application/pdf", Title: "pdf"},
		},
		Categories: []*atom.Category{{Term: "stat.ML"}, {Term: "cs.LG"}},
		Extensions: ext.Extensions{
			"arxiv": {
				"comment":          {{Name: "comment", Value: "12 pages, 3 figures\n"}},
				"journal_ref":      {{Name: "journal_ref", Value: "J. Mach. Learn. 7 (2026)"}},
				"doi":              {{Name: "doi", Value: "10.1000/xyz123"}},
				"primary_category": {{Name: "primary_category", Attrs: map[string]string{"term": "stat.ML"}}},
			},
		},
	}
}

func TestNormalizeFullEntry(t *testing.T) {
	rec, err := Normalize(testEntry(), []string{"Univ A", "Univ B", "Univ A"})
	require.NoError(t, err)

	assert.Equal(t, "Sparse Kernels for\n  Online Learning", rec.Title)
	assert.Equal(t, "We study kernels.\nThey are sparse.", rec.Summary)
	assert.Equal(t, "2026-10-12T17:59:58Z", rec.Published)
	assert.Equal(t, time.Date(2026, 10, 12, 17, 59, 58, 0, time.UTC), rec.PublishedParsed)
	assert.Equal(t, "http://arxiv.org/abs/2610.01234v1", rec.ArxivURL)
	require.NotNil(t, rec.PDFURL)
	assert.Equal(t, "http://arxiv.org/pdf/2610.01234v1", *rec.PDFURL)
	assert.Equal(t, []string{"Ada Lovelace", "Alan Turing"}, rec.Authors)

	require.NotNil(t, rec.Affiliation)
	assert.Equal(t, "Univ A; Univ B", *rec.Affiliation)
	require.NotNil(t, rec.ArxivComment)
	assert.Equal(t, "12 pages, 3 figures", *rec.ArxivComment)
	require.NotNil(t, rec.JournalReference)
	assert.Equal(t, "J. Mach. Learn. 7 (2026)", *rec.JournalReference)
	require.NotNil(t, rec.DOI)
	assert.Equal(t, "10.1000/xyz123", *rec.DOI)

	assert.Equal(t, "http://arxiv.org/abs/2610.01234v1", rec.Extra["id"])
	assert.Equal(t, "Alan Turing", rec.Extra["author"])
	assert.Equal(t, []string{"stat.ML", "cs.LG"}, rec.Extra["tags"])
	assert.Equal(t, map[string]string{"term": "stat.ML"}, rec.Extra["arxiv_primary_category"])
}

func TestNormalizeOptionalFieldsDefaultToNil(t *testing.T) {
	e := testEntry()
	e.Extensions = nil
	e.Links = e.Links[:1]

	rec, err := Normalize(e, nil)
	require.NoError(t, err)

	assert.Nil(t, rec.PDFURL)
	assert.Nil(t, rec.Affiliation)
	assert.Nil(t, rec.ArxivComment)
	assert.Nil(t, rec.JournalReference)
	assert.Nil(t, rec.DOI)
}

func TestPDFLink(t *testing.T) {
	tests := []struct {
		name  string
		links []*atom.Link
		want  string
		isNil bool
	}{
		{"no links", nil, "", true},
		{"no pdf title", []*atom.Link{{Href: "a", Rel: "alternate"}, {Href: "b", Type: "application/pdf"}}, "", true},
		{"single pdf", []*atom.Link{{Href: "a"}, {Href: "p1", Title: "pdf"}}, "p1", false},
		{"first pdf wins", []*atom.Link{{Href: "p1", Title: "pdf"}, {Href: "p2", Title: "pdf"}}, "p1", false},
		{"case sensitive", []*atom.Link{{Href: "p1", Title: "PDF"}}, "", true},
		{"nil link skipped", []*atom.Link{nil, {Href: "p1", Title: "pdf"}}, "p1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pdfLink(tt.links)
			if tt.isNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestAlternateLink(t *testing.T) {
	assert.Equal(t, "a", alternateLink([]*atom.Link{{Href: "p", Rel: "related"}, {Href: "a", Rel: "alternate"}}))
	assert.Equal(t, "b", alternateLink([]*atom.Link{{Href: "b"}}))
	assert.Equal(t, "", alternateLink([]*atom.Link{{Href: "p", Rel: "related"}}))
}

func TestNormalizeMalformed(t *testing.T) {
	t.Run("nil entry", func(t *testing.T) {
		_, err := Normalize(nil, nil)
		assert.ErrorIs(t, err, ErrMalformedEntry)
	})
	t.Run("no published", func(t *testing.T) {
		e := testEntry()
		e.PublishedParsed = nil
		_, err := Normalize(e, nil)
		assert.ErrorIs(t, err, ErrMalformedEntry)
	})
	t.Run("no alternate link", func(t *testing.T) {
		e := testEntry()
		e.Links = []*atom.Link{{Href: "http://arxiv.org/pdf/x", Rel: "related", Title: "pdf"}}
		_, err := Normalize(e, nil)
		assert.ErrorIs(t, err, ErrMalformedEntry)
	})
}

func TestNormalizeIdempotentText(t *testing.T) {
	e := testEntry()
	first, err := Normalize(e, nil)
	require.NoError(t, err)

	e.Title = first.Title
	e.Summary = first.Summary
	second, err := Normalize(e, nil)
	require.NoError(t, err)

	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, first.Summary, second.Summary)
}

func TestTrimNewlinesKeepsOtherWhitespace(t *testing.T) {
	assert.Equal(t, "a b ", trimNewlines("a b \n\n"))
	assert.Equal(t, "line\none", trimNewlines("line\none"))
}

func TestPrune(t *testing.T) {
	rec, err := Normalize(testEntry(), nil)
	require.NoError(t, err)
	Prune(&rec)

	for _, key := range PruneKeys {
		assert.NotContains(t, rec.Extra, key)
	}
	// Canonical fields survive.
	assert.NotEmpty(t, rec.Title)
	assert.NotEmpty(t, rec.ArxivURL)
}

func TestPruneAbsentKeysIsLenient(t *testing.T) {
	rec := types.PaperRecord{Extra: map[string]any{"links": nil, "keep": 1}}
	assert.NotPanics(t, func() { Prune(&rec) })
	assert.Equal(t, map[string]any{"keep": 1}, rec.Extra)

	empty := types.PaperRecord{}
	assert.NotPanics(t, func() { Prune(&empty) })
}
