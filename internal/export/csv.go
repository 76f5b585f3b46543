// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/csv"
	"io"

	"github.com/pdiddy/arxiv-translate/pkg/types"
)

// utf8BOM lets spreadsheet applications detect the encoding of Japanese text.
const utf8BOM = "\ufeff"

func writeCSV(w io.Writer, table types.Table) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for i := 0; i < table.Len(); i++ {
		row := []string{
			table.Title[i],
			table.Summary[i],
			table.Published[i],
			table.ArxivURL[i],
			pdfCell(table.PDFURL[i]),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
