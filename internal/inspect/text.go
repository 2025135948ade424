package inspect

import (
	"fmt"
	"io"
	"strings"

	"github.com/salmonumbrella/sheetdump/internal/output"
)

const (
	contentsHeader = "=== Spreadsheet contents ==="
	detailsHeader  = "=== Cell details ==="
	emptyTable     = "(empty table)"
)

// flattener keeps multi-line and tabbed cell text on one aligned line.
var flattener = strings.NewReplacer("\r\n", `\n`, "\n", `\n`, "\r", `\r`, "\t", `\t`)

func flatten(s string) string {
	return flattener.Replace(s)
}

// RenderText writes both sections of the plain-text report:
//
//	=== Spreadsheet contents ===
//	<aligned table>
//
//	=== Cell details ===
//	row 1, column 1: a (type: string)
func (r *Report) RenderText(w io.Writer) error {
	if _, err := fmt.Fprintln(w, contentsHeader); err != nil {
		return err
	}
	if len(r.Columns) == 0 {
		if _, err := fmt.Fprintln(w, emptyTable); err != nil {
			return err
		}
	} else if err := output.WriteTable(w, r.OutputTable()); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\n%s\n", detailsHeader); err != nil {
		return err
	}
	for _, c := range r.Cells {
		if _, err := fmt.Fprintf(w, "row %d, column %d: %s (type: %s)\n",
			c.Row, c.Column, flatten(c.Value.String()), c.Type); err != nil {
			return err
		}
	}
	return nil
}
