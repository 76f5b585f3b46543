// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feed queries the arXiv Atom API and returns raw or normalized entries.
package feed

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed/atom"

	"github.com/pdiddy/arxiv-translate/internal/httputil"
	"github.com/pdiddy/arxiv-translate/internal/normalize"
	"github.com/pdiddy/arxiv-translate/pkg/types"
)

// DefaultRootURL is the arXiv API root; "query?" is appended per request.
const DefaultRootURL = "http://export.arxiv.org/api/"

// arxivErrorPrefix marks the pseudo-entry arXiv returns for malformed queries.
const arxivErrorPrefix = "http://arxiv.org/api/errors"

// RemoteQueryError reports a non-success response from the feed endpoint.
// Status is 0 when the provider gave no status.
type RemoteQueryError struct {
	Status int
}

func (e *RemoteQueryError) Error() string {
	status := "no status"
	if e.Status != 0 {
		status = strconv.Itoa(e.Status)
	}
	return fmt.Sprintf("HTTP error %s in query", status)
}

// Params holds the query-string parameters of one feed request.
type Params struct {
	SearchQuery string
	Start       int
	MaxResults  int
	SortBy      string
	SortOrder   string
}

// ParamsFromConfig builds Params for keyword from the query settings.
func ParamsFromConfig(keyword string, cfg types.QueryConfig) Params {
	return Params{
		SearchQuery: keyword,
		Start:       cfg.Start,
		MaxResults:  cfg.MaxResults,
		SortBy:      cfg.SortBy,
		SortOrder:   cfg.SortOrder,
	}
}

// Encode returns the URL-encoded query string. Values are passed through
// unchecked; the provider rejects what it does not accept.
func (p Params) Encode() string {
	v := url.Values{}
	v.Set("search_query", p.SearchQuery)
	v.Set("start", strconv.Itoa(p.Start))
	v.Set("max_results", strconv.Itoa(p.MaxResults))
	v.Set("sortBy", p.SortBy)
	v.Set("sortOrder", p.SortOrder)
	return v.Encode()
}

// RawEntry is one parsed Atom entry plus the author affiliations the Atom
// parser does not surface.
type RawEntry struct {
	*atom.Entry
	Affiliations []string
}

// Client issues queries against the feed endpoint.
type Client struct {
	HTTP      *http.Client
	RootURL   string
	UserAgent string
}

// NewClient returns a Client for rootURL. An empty rootURL selects DefaultRootURL.
func NewClient(cfg types.HTTPConfig, rootURL string) *Client {
	if rootURL == "" {
		rootURL = DefaultRootURL
	}
	return &Client{
		HTTP:      httputil.NewClient(cfg),
		RootURL:   rootURL,
		UserAgent: cfg.UserAgent,
	}
}

// URL returns the full request URL for p.
func (c *Client) URL(p Params) string {
	root := c.RootURL
	if !strings.HasSuffix(root, "/") {
		root += "/"
	}
	return root + "query?" + p.Encode()
}

// Query issues one request and returns the raw entries in feed order.
func (c *Client) Query(ctx context.Context, p Params) ([]RawEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(p), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httputil.SetUserAgent(req, c.UserAgent)

	body, err := httputil.Do(c.HTTP, req)
	if err != nil {
		var se *httputil.StatusError
		if errors.As(err, &se) {
			return nil, &RemoteQueryError{Status: se.StatusCode}
		}
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}

	parsed, err := (&atom.Parser{}).Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	affiliations, err := decodeAffiliations(body)
	if err != nil {
		return nil, fmt.Errorf("decoding author affiliations: %w", err)
	}

	entries := make([]RawEntry, 0, len(parsed.Entries))
	for i, e := range parsed.Entries {
		if e == nil {
			continue
		}
		if strings.HasPrefix(e.ID, arxivErrorPrefix) {
			return nil, fmt.Errorf("arXiv API rejected query %q: %s", p.SearchQuery, strings.TrimSpace(e.Summary))
		}
		raw := RawEntry{Entry: e}
		if i < len(affiliations) {
			raw.Affiliations = affiliations[i]
		}
		entries = append(entries, raw)
	}
	return entries, nil
}

// Fetch queries the endpoint and normalizes every entry, pruning
// provider-internal fields when prune is set.
func (c *Client) Fetch(ctx context.Context, p Params, prune bool) ([]types.PaperRecord, error) {
	entries, err := c.Query(ctx, p)
	if err != nil {
		return nil, err
	}

	records := make([]types.PaperRecord, 0, len(entries))
	for i, e := range entries {
		rec, err := normalize.Normalize(e.Entry, e.Affiliations)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if prune {
			normalize.Prune(&rec)
		}
		records = append(records, rec)
	}
	return records, nil
}

// affiliationFeed picks out arxiv:affiliation elements nested under each
// entry's authors.
type affiliationFeed struct {
	Entries []struct {
		Authors []struct {
			Affiliations []string `xml:"http://arxiv.org/schemas/atom affiliation"`
		} `xml:"http://www.w3.org/2005/Atom author"`
	} `xml:"http://www.w3.org/2005/Atom entry"`
}

// decodeAffiliations returns, per entry in document order, the affiliations
// of all its authors.
func decodeAffiliations(body []byte) ([][]string, error) {
	var f affiliationFeed
	if err := xml.Unmarshal(body, &f); err != nil {
		return nil, err
	}
	out := make([][]string, len(f.Entries))
	for i, e := range f.Entries {
		for _, a := range e.Authors {
			out[i] = append(out[i], a.Affiliations...)
		}
	}
	return out, nil
}
