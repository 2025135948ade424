package output

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Table represents a pre-rendered table for table output formatting.
type Table struct {
	Headers []string   `json:"headers" yaml:"headers"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}

// WriteTable writes t with space-aligned columns. Cells may not contain tabs
// or newlines; callers are expected to have flattened them.
func WriteTable(w io.Writer, t Table) error {
	if len(t.Headers) == 0 && len(t.Rows) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if len(t.Headers) > 0 {
		writeTableRow(tw, t.Headers)
	}
	for _, row := range t.Rows {
		writeTableRow(tw, row)
	}
	return tw.Flush()
}

func writeTableRow(w io.Writer, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			_, _ = fmt.Fprint(w, "\t")
		}
		_, _ = fmt.Fprint(w, cell)
	}
	_, _ = fmt.Fprintln(w)
}
