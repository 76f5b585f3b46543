// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/json"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-translate/pkg/types"
)

func writeJSON(w io.Writer, table types.Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(table.Rows())
}

func writeYAML(w io.Writer, table types.Table) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(table.Rows()); err != nil {
		return err
	}
	return enc.Close()
}
