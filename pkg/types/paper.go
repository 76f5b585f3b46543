// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the arxiv-translate pipeline:
// the canonical paper record produced by normalization, the translated record,
// and the parallel-column table handed to the exporter.
package types

import "time"

// Link is one <link> element of a feed entry.
type Link struct {
	Href  string `json:"href" yaml:"href"`
	Rel   string `json:"rel,omitempty" yaml:"rel,omitempty"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// PaperRecord is the canonical form of one feed entry. Title, Summary,
// Published, PublishedParsed, and ArxivURL are always set; the pointer
// fields are nil when the feed omits them.
type PaperRecord struct {
	// Title is the paper title with trailing newlines removed.
	Title string `json:"title" yaml:"title"`

	// Summary is the abstract with trailing newlines removed.
	Summary string `json:"summary" yaml:"summary"`

	// Published is the publication timestamp exactly as the feed supplied it.
	Published string `json:"published" yaml:"published"`

	// PublishedParsed is Published parsed to UTC. It is only used for
	// time-window selection.
	PublishedParsed time.Time `json:"published_parsed" yaml:"published_parsed"`

	// Updated is the feed's last-updated timestamp string.
	Updated string `json:"updated,omitempty" yaml:"updated,omitempty"`

	// ArxivURL is the paper landing page (the entry's alternate link).
	ArxivURL string `json:"arxiv_url" yaml:"arxiv_url"`

	// PDFURL is the first link labelled "pdf", or nil.
	PDFURL *string `json:"pdf_url" yaml:"pdf_url"`

	// Authors lists author names in source order.
	Authors []string `json:"authors" yaml:"authors"`

	Affiliation      *string `json:"affiliation" yaml:"affiliation"`
	ArxivComment     *string `json:"arxiv_comment" yaml:"arxiv_comment"`
	JournalReference *string `json:"journal_reference" yaml:"journal_reference"`
	DOI              *string `json:"doi" yaml:"doi"`

	// Extra holds provider-internal fields under their feed names
	// (id, links, tags, ...). Pruning removes keys from this map.
	Extra map[string]any `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// TranslatedRecord is a PaperRecord after translation. Title and Summary
// carry the translated text; the original text is kept alongside.
type TranslatedRecord struct {
	Title           string  `json:"title" yaml:"title"`
	Summary         string  `json:"summary" yaml:"summary"`
	Published       string  `json:"published" yaml:"published"`
	ArxivURL        string  `json:"arxiv_url" yaml:"arxiv_url"`
	PDFURL          *string `json:"pdf_url" yaml:"pdf_url"`
	OriginalTitle   string  `json:"original_title" yaml:"original_title"`
	OriginalSummary string  `json:"original_summary" yaml:"original_summary"`
}
