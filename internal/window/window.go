// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package window selects records published inside a recent half-open UTC
// interval.
package window

import (
	"fmt"
	"io"
	"time"
	_ "time/tzdata"

	"github.com/pdiddy/arxiv-translate/pkg/types"
)

// DefaultTimezone is the zone the local clock is read in when none is configured.
const DefaultTimezone = "Asia/Tokyo"

// Window is the interval [From, To) in UTC. Local is the instant To was
// derived from, in the configured zone.
type Window struct {
	Local time.Time
	From  time.Time
	To    time.Time
}

// New returns the window ending at now and reaching back days days. now is
// read in loc and converted to UTC.
func New(now time.Time, days int, loc *time.Location) Window {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	to := local.UTC()
	return Window{
		Local: local,
		From:  to.AddDate(0, 0, -days),
		To:    to,
	}
}

// LoadLocation resolves an IANA zone name, defaulting to DefaultTimezone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", name, err)
	}
	return loc, nil
}

// Contains reports whether t, truncated to whole seconds, lies in [From, To).
func (w Window) Contains(t time.Time) bool {
	t = t.UTC().Truncate(time.Second)
	return !t.Before(w.From) && t.Before(w.To)
}

// Select returns the records whose PublishedParsed lies inside w, in input
// order. The input slice is not modified. With debug set, the window
// boundaries and every input timestamp are written to out first.
func Select(records []types.PaperRecord, w Window, debug bool, out io.Writer) []types.PaperRecord {
	if debug && out != nil {
		dump(records, w, out)
	}

	selected := make([]types.PaperRecord, 0, len(records))
	for _, rec := range records {
		if w.Contains(rec.PublishedParsed) {
			selected = append(selected, rec)
		}
	}
	return selected
}

func dump(records []types.PaperRecord, w Window, out io.Writer) {
	fmt.Fprintf(out, "local:    %s\n", w.Local.Format(time.RFC3339))
	fmt.Fprintf(out, "UTC_from: %s\n", w.From.Format(time.RFC3339))
	fmt.Fprintf(out, "UTC_to  : %s\n", w.To.Format(time.RFC3339))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "recent papers' timestamps are like below:")
	for _, rec := range records {
		fmt.Fprintln(out, rec.Published)
	}
}
