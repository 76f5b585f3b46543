// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize maps raw arXiv Atom entries onto the canonical
// PaperRecord schema.
package normalize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed/atom"
	ext "github.com/mmcdole/gofeed/extensions"

	"github.com/pdiddy/arxiv-translate/pkg/types"
)

// ErrMalformedEntry is returned for entries missing a field every
// PaperRecord must carry.
var ErrMalformedEntry = errors.New("malformed feed entry")

// arxivPrefix is the namespace prefix arXiv declares for its Atom extensions.
const arxivPrefix = "arxiv"

// PruneKeys lists the provider-internal fields Prune removes from
// PaperRecord.Extra.
var PruneKeys = []string{
	"updated_parsed",
	"arxiv_primary_category",
	"summary_detail",
	"author",
	"author_detail",
	"links",
	"guidislink",
	"title_detail",
	"tags",
	"id",
}

// Normalize converts one entry into a PaperRecord. affiliations are the
// entry's author affiliations in document order; they are decoded
// separately because the Atom parser drops elements nested under <author>.
func Normalize(e *atom.Entry, affiliations []string) (types.PaperRecord, error) {
	if e == nil {
		return types.PaperRecord{}, fmt.Errorf("%w: nil entry", ErrMalformedEntry)
	}
	if e.PublishedParsed == nil {
		return types.PaperRecord{}, fmt.Errorf("%w: %s has no parseable published timestamp", ErrMalformedEntry, e.ID)
	}
	arxivURL := alternateLink(e.Links)
	if arxivURL == "" {
		return types.PaperRecord{}, fmt.Errorf("%w: %s has no alternate link", ErrMalformedEntry, e.ID)
	}

	rec := types.PaperRecord{
		Title:            trimNewlines(e.Title),
		Summary:          trimNewlines(e.Summary),
		Published:        e.Published,
		PublishedParsed:  e.PublishedParsed.UTC(),
		Updated:          e.Updated,
		ArxivURL:         arxivURL,
		PDFURL:           pdfLink(e.Links),
		Authors:          authorNames(e.Authors),
		Affiliation:      joinAffiliations(affiliations),
		JournalReference: extensionValue(e.Extensions, "journal_ref"),
		DOI:              extensionValue(e.Extensions, "doi"),
		Extra:            extras(e),
	}
	if c := extensionValue(e.Extensions, "comment"); c != nil {
		trimmed := trimNewlines(*c)
		rec.ArxivComment = &trimmed
	}
	return rec, nil
}

// Prune removes PruneKeys from rec.Extra. Keys that are already absent are
// skipped.
func Prune(rec *types.PaperRecord) {
	for _, key := range PruneKeys {
		delete(rec.Extra, key)
	}
}

// trimNewlines strips trailing newline characters only; other trailing
// whitespace is kept.
func trimNewlines(s string) string {
	return strings.TrimRight(s, "\n")
}

// pdfLink returns the href of the first link titled "pdf", or nil.
func pdfLink(links []*atom.Link) *string {
	for _, l := range links {
		if l != nil && l.Title == "pdf" {
			href := l.Href
			return &href
		}
	}
	return nil
}

// alternateLink returns the landing-page link. Atom treats a link without
// rel as rel="alternate".
func alternateLink(links []*atom.Link) string {
	for _, l := range links {
		if l == nil || l.Href == "" {
			continue
		}
		if l.Rel == "alternate" || l.Rel == "" {
			return l.Href
		}
	}
	return ""
}

func authorNames(people []*atom.Person) []string {
	names := make([]string, 0, len(people))
	for _, p := range people {
		if p == nil {
			continue
		}
		names = append(names, p.Name)
	}
	return names
}

// joinAffiliations collapses author affiliations into one value, keeping
// first-seen order and dropping repeats.
func joinAffiliations(affiliations []string) *string {
	seen := make(map[string]bool, len(affiliations))
	var parts []string
	for _, a := range affiliations {
		a = strings.TrimSpace(a)
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		parts = append(parts, a)
	}
	if len(parts) == 0 {
		return nil
	}
	joined := strings.Join(parts, "; ")
	return &joined
}

// extensionValue returns the value of the first arxiv:<name> element, or nil.
func extensionValue(exts ext.Extensions, name string) *string {
	e := firstExtension(exts, name)
	if e == nil {
		return nil
	}
	v := e.Value
	return &v
}

func firstExtension(exts ext.Extensions, name string) *ext.Extension {
	if exts == nil {
		return nil
	}
	values := exts[arxivPrefix][name]
	if len(values) == 0 {
		return nil
	}
	return &values[0]
}

// extras collects the provider-internal fields into the record's Extra map,
// keyed the way the feed names them.
func extras(e *atom.Entry) map[string]any {
	extra := map[string]any{
		"id":         e.ID,
		"guidislink": false,
		"title_detail": map[string]string{
			"type":  "text/plain",
			"value": e.Title,
		},
		"summary_detail": map[string]string{
			"type":  "text/plain",
			"value": e.Summary,
		},
	}

	if e.UpdatedParsed != nil {
		extra["updated_parsed"] = e.UpdatedParsed.UTC()
	}

	if pc := firstExtension(e.Extensions, "primary_category"); pc != nil {
		extra["arxiv_primary_category"] = map[string]string{"term": pc.Attrs["term"]}
	}

	if n := len(e.Authors); n > 0 && e.Authors[n-1] != nil {
		last := e.Authors[n-1].Name
		extra["author"] = last
		extra["author_detail"] = map[string]string{"name": last}
	}

	links := make([]types.Link, 0, len(e.Links))
	for _, l := range e.Links {
		if l == nil {
			continue
		}
		links = append(links, types.Link{Href: l.Href, Rel: l.Rel, Type: l.Type, Title: l.Title})
	}
	extra["links"] = links

	tags := make([]string, 0, len(e.Categories))
	for _, c := range e.Categories {
		if c != nil {
			tags = append(tags, c.Term)
		}
	}
	extra["tags"] = tags

	return extra
}
