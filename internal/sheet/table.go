package sheet

import "fmt"

// Table is the first sheet of a spreadsheet: inferred column names and the
// data rows below the header row. Every row has len(Columns) values.
type Table struct {
	Path       string
	Sheet      string
	SheetCount int
	Columns    []string
	Rows       [][]Value
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.Columns)
}

// Cell returns the value at the zero-based row and column. Out-of-range
// positions read as missing.
func (t *Table) Cell(row, col int) Value {
	if row < 0 || row >= len(t.Rows) {
		return Missing()
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return Missing()
	}
	return r[col]
}

// newTable turns a raw grid into a Table. The first non-empty row is the
// header; trailing empty rows are dropped and short rows are padded.
func newTable(path, sheetName string, grid [][]Value) *Table {
	t := &Table{Path: path, Sheet: sheetName, SheetCount: 1}

	start := 0
	for start < len(grid) && rowEmpty(grid[start]) {
		start++
	}
	end := len(grid)
	for end > start && rowEmpty(grid[end-1]) {
		end--
	}
	if start == end {
		return t
	}

	header := grid[start]
	body := grid[start+1 : end]

	width := len(header)
	for _, row := range body {
		if len(row) > width {
			width = len(row)
		}
	}

	t.Columns = columnNames(header, width)
	t.Rows = make([][]Value, len(body))
	for i, row := range body {
		padded := make([]Value, width)
		for j, v := range row {
			if isNAText(v) {
				v = Missing()
			}
			padded[j] = v
		}
		t.Rows[i] = padded
	}
	return t
}

// naTexts are the strings pandas' default reader treats as missing data.
// Header cells keep them as column names.
var naTexts = map[string]bool{
	"#N/A": true, "#N/A N/A": true, "#NA": true,
	"-1.#IND": true, "-1.#QNAN": true, "-NaN": true, "-nan": true,
	"1.#IND": true, "1.#QNAN": true, "<NA>": true,
	"N/A": true, "NA": true, "NULL": true, "NaN": true, "None": true,
	"n/a": true, "nan": true, "null": true,
}

func isNAText(v Value) bool {
	return v.Kind() == KindString && naTexts[v.String()]
}

func rowEmpty(row []Value) bool {
	for _, v := range row {
		if !v.IsMissing() {
			return false
		}
	}
	return true
}

// columnNames names empty header cells "Unnamed: <i>" and suffixes
// duplicates with ".1", ".2", ...
func columnNames(header []Value, width int) []string {
	names := make([]string, width)
	for i := range names {
		if i < len(header) && !header[i].IsMissing() {
			names[i] = header[i].String()
		} else {
			names[i] = fmt.Sprintf("Unnamed: %d", i)
		}
	}

	counts := make(map[string]int, len(names))
	for i, name := range names {
		n, dup := counts[name]
		if !dup {
			counts[name] = 0
			continue
		}
		candidate := name
		for {
			n++
			candidate = fmt.Sprintf("%s.%d", name, n)
			if _, taken := counts[candidate]; !taken {
				break
			}
		}
		counts[name] = n
		counts[candidate] = 0
		names[i] = candidate
	}
	return names
}
