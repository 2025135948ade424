package sheet

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

func loadWorkbook(ctx context.Context, path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	name := sheets[0]

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}

	r := &workbookReader{
		f:          f,
		sheet:      name,
		dateStyles: make(map[int]bool),
	}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		r.date1904 = *props.Date1904
	}

	grid := make([][]Value, len(rows))
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cells := make([]Value, len(row))
		for j, raw := range row {
			v, err := r.cell(j+1, i+1, raw)
			if err != nil {
				return nil, err
			}
			cells[j] = v
		}
		grid[i] = cells
	}

	t := newTable(path, name, grid)
	t.SheetCount = len(sheets)
	return t, nil
}

type workbookReader struct {
	f          *excelize.File
	sheet      string
	date1904   bool
	dateStyles map[int]bool
}

// cell types a raw cell string using the stored cell type and, for numbers,
// the cell's number format.
func (r *workbookReader) cell(col, row int, raw string) (Value, error) {
	if raw == "" {
		return Missing(), nil
	}
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return Value{}, err
	}
	typ, err := r.f.GetCellType(r.sheet, axis)
	if err != nil {
		return Value{}, fmt.Errorf("cell %s: %w", axis, err)
	}

	switch typ {
	case excelize.CellTypeBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return String(raw), nil
		}
		return Bool(b), nil
	case excelize.CellTypeDate:
		if t, ok := parseTime(raw); ok {
			return Datetime(t), nil
		}
		return String(raw), nil
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError:
		return String(raw), nil
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return String(raw), nil
	}
	isDate, err := r.isDateStyled(axis)
	if err != nil {
		return Value{}, fmt.Errorf("cell %s: %w", axis, err)
	}
	if isDate {
		t, err := excelize.ExcelDateToTime(n, r.date1904)
		if err == nil {
			return Datetime(t), nil
		}
	}
	return Number(n), nil
}

func (r *workbookReader) isDateStyled(axis string) (bool, error) {
	idx, err := r.f.GetCellStyle(r.sheet, axis)
	if err != nil {
		return false, err
	}
	if cached, ok := r.dateStyles[idx]; ok {
		return cached, nil
	}
	style, err := r.f.GetStyle(idx)
	if err != nil {
		return false, err
	}
	var isDate bool
	if style.CustomNumFmt != nil {
		isDate = isDateFormatCode(*style.CustomNumFmt)
	} else {
		isDate = builtinDateFormats[style.NumFmt]
	}
	r.dateStyles[idx] = isDate
	return isDate, nil
}

// builtinDateFormats lists the built-in number format IDs that render a
// serial number as a date or time, including the East Asian locale IDs.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// isDateFormatCode reports whether a custom number format code contains
// date or time tokens once literals, escapes and bracketed modifiers
// (colors, conditions, locales) are removed. Elapsed-time brackets such as
// [h] count as time tokens.
func isDateFormatCode(code string) bool {
	// Only the first section applies to positive numbers.
	if i := strings.IndexByte(code, ';'); i >= 0 {
		code = code[:i]
	}
	var b strings.Builder
	for i := 0; i < len(code); i++ {
		ch := code[i]
		switch ch {
		case '"':
			j := strings.IndexByte(code[i+1:], '"')
			if j < 0 {
				i = len(code)
			} else {
				i += j + 1
			}
		case '\\', '_', '*':
			i++
		case '[':
			j := strings.IndexByte(code[i+1:], ']')
			if j < 0 {
				i = len(code)
				continue
			}
			inner := strings.ToLower(code[i+1 : i+1+j])
			if inner != "" && strings.Trim(inner, "hms") == "" {
				b.WriteString(inner)
			}
			i += j + 1
		default:
			b.WriteByte(ch)
		}
	}
	cleaned := strings.ToLower(b.String())
	if cleaned == "general" {
		return false
	}
	return strings.ContainsAny(cleaned, "ymdhs")
}
