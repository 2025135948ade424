// Package inspect turns a loaded sheet.Table into the diagnostic report the
// CLI prints: the whole table, then one line per cell with its value kind.
package inspect

import (
	"github.com/salmonumbrella/sheetdump/internal/output"
	"github.com/salmonumbrella/sheetdump/internal/sheet"
)

// Cell is one entry of the cell details section. Row and Column are 1-based.
type Cell struct {
	Row    int         `json:"row" yaml:"row"`
	Column int         `json:"column" yaml:"column"`
	Header string      `json:"header" yaml:"header"`
	Value  sheet.Value `json:"value" yaml:"value"`
	Type   sheet.Kind  `json:"type" yaml:"type"`
}

// Report is the structured form of a table dump.
type Report struct {
	File        string          `json:"file" yaml:"file"`
	Sheet       string          `json:"sheet,omitempty" yaml:"sheet,omitempty"`
	Columns     []string        `json:"columns" yaml:"columns"`
	RowCount    int             `json:"row_count" yaml:"row_count"`
	ColumnCount int             `json:"column_count" yaml:"column_count"`
	Rows        [][]sheet.Value `json:"rows" yaml:"rows"`
	Cells       []Cell          `json:"cells" yaml:"cells"`
}

// NewReport builds a Report from t. Cells are listed in row-major order.
func NewReport(t *sheet.Table) *Report {
	r := &Report{
		File:        t.Path,
		Sheet:       t.Sheet,
		Columns:     append([]string{}, t.Columns...),
		RowCount:    t.NumRows(),
		ColumnCount: t.NumColumns(),
		Rows:        t.Rows,
		Cells:       make([]Cell, 0, t.NumRows()*t.NumColumns()),
	}
	if r.Rows == nil {
		r.Rows = [][]sheet.Value{}
	}

	for i := 0; i < t.NumRows(); i++ {
		for j := 0; j < t.NumColumns(); j++ {
			v := t.Cell(i, j)
			r.Cells = append(r.Cells, Cell{
				Row:    i + 1,
				Column: j + 1,
				Header: t.Columns[j],
				Value:  v,
				Type:   v.Kind(),
			})
		}
	}
	return r
}

// OutputTable returns the whole-table section as an output.Table.
func (r *Report) OutputTable() output.Table {
	tbl := output.Table{
		Headers: make([]string, len(r.Columns)),
		Rows:    make([][]string, 0, len(r.Rows)),
	}
	for i, c := range r.Columns {
		tbl.Headers[i] = flatten(c)
	}
	for _, row := range r.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = flatten(v.String())
		}
		tbl.Rows = append(tbl.Rows, cells)
	}
	return tbl
}

// Records returns the cells, one ndjson line each.
func (r *Report) Records() []interface{} {
	out := make([]interface{}, len(r.Cells))
	for i, c := range r.Cells {
		out[i] = c
	}
	return out
}
