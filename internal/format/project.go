// SPDX-License-Identifier: Apache-2.0

package format

import (
	"strings"

	"github.com/trfproj/trf-mcp/internal/report"
)

// validColumns are the projectable record fields.
var validColumns = map[string]func(report.Record) string{
	"feature": func(r report.Record) string { return r.Feature },
	"status":  func(r report.Record) string { return r.Status },
	"value":   func(r report.Record) string { return r.Value },
	"remarks": func(r report.Record) string { return r.Remarks },
	"file":    func(r report.Record) string { return r.File },
}

// defaultColumns is the projection used when no requested column is valid.
var defaultColumns = []string{"feature", "status", "value", "file"}

// Project keeps only the requested columns of each record, in the order
// requested. Unknown column names are ignored, case-insensitively; if none
// survive, the default column set is used.
func Project(records []report.Record, columns []string) []map[string]string {
	var cols []string
	for _, c := range columns {
		c = strings.ToLower(c)
		if _, ok := validColumns[c]; ok {
			cols = append(cols, c)
		}
	}
	if len(cols) == 0 {
		cols = defaultColumns
	}

	out := make([]map[string]string, 0, len(records))
	for _, r := range records {
		row := make(map[string]string, len(cols))
		for _, c := range cols {
			row[c] = validColumns[c](r)
		}
		out = append(out, row)
	}
	return out
}
