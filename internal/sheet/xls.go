package sheet

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/extrame/xls"
)

const xlsCharset = "utf-8"

// loadXLS reads the first sheet of a legacy BIFF (.xls) workbook. The reader
// only exposes formatted cell text, so cells are typed like CSV fields.
func loadXLS(ctx context.Context, path string) (t *Table, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	// The BIFF parser panics on truncated or corrupt records.
	defer func() {
		if r := recover(); r != nil {
			t, err = nil, fmt.Errorf("malformed xls workbook: %v", r)
		}
	}()

	wb, err := xls.OpenReader(file, xlsCharset)
	if err != nil {
		return nil, err
	}
	if wb == nil {
		return nil, errors.New("no workbook stream in file")
	}
	if wb.NumSheets() == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	ws := wb.GetSheet(0)
	if ws == nil {
		return nil, errors.New("workbook has no sheets")
	}

	grid, err := xlsGrid(ctx, int(ws.MaxRow), func(i int) []string {
		return xlsRowText(ws, i)
	})
	if err != nil {
		return nil, err
	}

	t = newTable(path, ws.Name, grid)
	t.SheetCount = wb.NumSheets()
	return t, nil
}

// xlsGrid types rows 0..maxRow as returned by rowText. A nil row is blank.
func xlsGrid(ctx context.Context, maxRow int, rowText func(i int) []string) ([][]Value, error) {
	grid := make([][]Value, 0, maxRow+1)
	for i := 0; i <= maxRow; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		texts := rowText(i)
		row := make([]Value, len(texts))
		for j, s := range texts {
			row[j] = ParseText(s)
		}
		grid = append(grid, row)
	}
	return grid, nil
}

// xlsRowText returns the cell text of row i from column 0, or nil when the
// sheet stores no such row.
func xlsRowText(ws *xls.WorkSheet, i int) (texts []string) {
	// WorkSheet.Row dereferences a nil entry for rows that were never stored.
	defer func() {
		if recover() != nil {
			texts = nil
		}
	}()

	row := ws.Row(i)
	if row == nil {
		return nil
	}
	texts = make([]string, row.LastCol())
	for col := row.FirstCol(); col < row.LastCol(); col++ {
		texts[col] = row.Col(col)
	}
	return texts
}
