package inspect

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/salmonumbrella/sheetdump/internal/sheet"
)

func sampleTable() *sheet.Table {
	return &sheet.Table{
		Path:    "people.xlsx",
		Sheet:   "Sheet1",
		Columns: []string{"name", "age"},
		Rows: [][]sheet.Value{
			{sheet.String("a"), sheet.Int(1)},
			{sheet.String("b"), sheet.Int(2)},
		},
	}
}

func TestNewReport_RowMajorCells(t *testing.T) {
	r := NewReport(sampleTable())

	if r.RowCount != 2 || r.ColumnCount != 2 {
		t.Fatalf("counts = %d x %d, want 2 x 2", r.RowCount, r.ColumnCount)
	}
	if len(r.Cells) != 4 {
		t.Fatalf("len(Cells) = %d, want 4", len(r.Cells))
	}

	wantTypes := []sheet.Kind{sheet.KindString, sheet.KindInt, sheet.KindString, sheet.KindInt}
	wantPos := [][2]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}}
	for i, c := range r.Cells {
		if c.Type != wantTypes[i] {
			t.Errorf("cell %d type = %s, want %s", i, c.Type, wantTypes[i])
		}
		if c.Row != wantPos[i][0] || c.Column != wantPos[i][1] {
			t.Errorf("cell %d at (%d,%d), want %v", i, c.Row, c.Column, wantPos[i])
		}
	}
	if r.Cells[3].Header != "age" {
		t.Errorf("header = %q, want age", r.Cells[3].Header)
	}
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	if err := NewReport(sampleTable()).RenderText(&buf); err != nil {
		t.Fatalf("RenderText() error = %v", err)
	}

	want := strings.Join([]string{
		"=== Spreadsheet contents ===",
		"name  age",
		"a     1",
		"b     2",
		"",
		"=== Cell details ===",
		"row 1, column 1: a (type: string)",
		"row 1, column 2: 1 (type: int)",
		"row 2, column 1: b (type: string)",
		"row 2, column 2: 2 (type: int)",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("RenderText() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderText_Idempotent(t *testing.T) {
	var first, second bytes.Buffer
	if err := NewReport(sampleTable()).RenderText(&first); err != nil {
		t.Fatal(err)
	}
	if err := NewReport(sampleTable()).RenderText(&second); err != nil {
		t.Fatal(err)
	}
	if first.String() != second.String() {
		t.Error("rendering the same table twice produced different output")
	}
}

func TestRenderText_MissingAndMixedKinds(t *testing.T) {
	tbl := &sheet.Table{
		Path:    "mixed.xlsx",
		Columns: []string{"n", "label", "gap"},
		Rows: [][]sheet.Value{
			{sheet.Float(1.5), sheet.String("x"), sheet.Missing()},
		},
	}

	var buf bytes.Buffer
	if err := NewReport(tbl).RenderText(&buf); err != nil {
		t.Fatalf("RenderText() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"row 1, column 1: 1.5 (type: float)",
		"row 1, column 2: x (type: string)",
		"row 1, column 3: NaN (type: missing)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderText_FlattensControlCharacters(t *testing.T) {
	tbl := &sheet.Table{
		Columns: []string{"note"},
		Rows:    [][]sheet.Value{{sheet.String("line1\nline2\tx")}},
	}

	var buf bytes.Buffer
	if err := NewReport(tbl).RenderText(&buf); err != nil {
		t.Fatalf("RenderText() error = %v", err)
	}
	if !strings.Contains(buf.String(), `row 1, column 1: line1\nline2\tx (type: string)`) {
		t.Errorf("expected escaped cell text, got:\n%s", buf.String())
	}
}

func TestRenderText_EmptyTable(t *testing.T) {
	var buf bytes.Buffer
	if err := NewReport(&sheet.Table{Path: "empty.csv"}).RenderText(&buf); err != nil {
		t.Fatalf("RenderText() error = %v", err)
	}
	want := "=== Spreadsheet contents ===\n(empty table)\n\n=== Cell details ===\n"
	if got := buf.String(); got != want {
		t.Errorf("RenderText() = %q, want %q", got, want)
	}
}

func TestRenderText_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	tbl := &sheet.Table{Columns: []string{"a", "b"}}
	if err := NewReport(tbl).RenderText(&buf); err != nil {
		t.Fatalf("RenderText() error = %v", err)
	}
	want := "=== Spreadsheet contents ===\na  b\n\n=== Cell details ===\n"
	if got := buf.String(); got != want {
		t.Errorf("RenderText() = %q, want %q", got, want)
	}
}

func TestReport_JSON(t *testing.T) {
	tbl := sampleTable()
	tbl.Rows[1][1] = sheet.Datetime(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))

	data, err := json.Marshal(NewReport(tbl))
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var decoded struct {
		File     string          `json:"file"`
		RowCount int             `json:"row_count"`
		Rows     [][]interface{} `json:"rows"`
		Cells    []struct {
			Value interface{} `json:"value"`
			Type  string      `json:"type"`
		} `json:"cells"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if decoded.File != "people.xlsx" || decoded.RowCount != 2 {
		t.Errorf("decoded = %+v", decoded)
	}
	last := decoded.Cells[3]
	if last.Type != "datetime" || last.Value != "2024-01-15 00:00:00" {
		t.Errorf("last cell = %+v", last)
	}
	if decoded.Rows[0][1] != float64(1) {
		t.Errorf("rows[0][1] = %v, want 1", decoded.Rows[0][1])
	}
}

func TestReport_YAML(t *testing.T) {
	data, err := yaml.Marshal(NewReport(sampleTable()))
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	out := string(data)
	for _, want := range []string{"file: people.xlsx", "row_count: 2", "type: int", "value: a"} {
		if !strings.Contains(out, want) {
			t.Errorf("yaml missing %q:\n%s", want, out)
		}
	}
}

func TestReport_Records(t *testing.T) {
	r := NewReport(sampleTable())
	recs := r.Records()
	if len(recs) != 4 {
		t.Fatalf("len(Records()) = %d, want 4", len(recs))
	}
	if c, ok := recs[0].(Cell); !ok || c.Value.String() != "a" {
		t.Errorf("first record = %#v", recs[0])
	}
}
