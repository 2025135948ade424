package sheet

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"
)

const utf8BOM = "\ufeff"

func loadCSV(ctx context.Context, path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	var grid [][]Value
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(grid) == 0 && len(record) > 0 {
			record[0] = strings.TrimPrefix(record[0], utf8BOM)
		}
		row := make([]Value, len(record))
		for i, field := range record {
			row[i] = ParseText(field)
		}
		grid = append(grid, row)
	}

	return newTable(path, "", grid), nil
}
