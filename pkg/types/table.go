// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Table holds the export columns as parallel slices. Index i of every
// column refers to the same source record.
type Table struct {
	Title     []string
	Summary   []string
	Published []string
	ArxivURL  []string
	PDFURL    []*string
}

// NewTable builds a Table from translated records, preserving their order.
func NewTable(records []TranslatedRecord) Table {
	t := Table{
		Title:     make([]string, len(records)),
		Summary:   make([]string, len(records)),
		Published: make([]string, len(records)),
		ArxivURL:  make([]string, len(records)),
		PDFURL:    make([]*string, len(records)),
	}
	for i, r := range records {
		t.Title[i] = r.Title
		t.Summary[i] = r.Summary
		t.Published[i] = r.Published
		t.ArxivURL[i] = r.ArxivURL
		t.PDFURL[i] = r.PDFURL
	}
	return t
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Title)
}

// Row is one exported row.
type Row struct {
	Title     string  `json:"title" yaml:"title"`
	Summary   string  `json:"summary" yaml:"summary"`
	Published string  `json:"published" yaml:"published"`
	ArxivURL  string  `json:"arxiv_url" yaml:"arxiv_url"`
	PDFURL    *string `json:"pdf_url" yaml:"pdf_url"`
}

// Rows returns the table as row structs.
func (t Table) Rows() []Row {
	rows := make([]Row, t.Len())
	for i := range rows {
		rows[i] = Row{
			Title:     t.Title[i],
			Summary:   t.Summary[i],
			Published: t.Published[i],
			ArxivURL:  t.ArxivURL[i],
			PDFURL:    t.PDFURL[i],
		}
	}
	return rows
}
