package output

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	clierrors "github.com/salmonumbrella/sheetdump/internal/errors"
)

// Format represents the output format type.
type Format string

const (
	// FormatText is the human-readable rendering (default).
	FormatText Format = "text"
	// FormatJSON is pretty-printed JSON format.
	FormatJSON Format = "json"
	// FormatNDJSON is newline-delimited JSON format.
	FormatNDJSON Format = "ndjson"
	// FormatTable is an aligned table.
	FormatTable Format = "table"
	// FormatYAML is YAML format.
	FormatYAML Format = "yaml"
)

// Formats lists the accepted --output values.
var Formats = []string{"text", "json", "ndjson", "jsonl", "table", "yaml"}

// ParseFormat converts a string to a Format type.
// Empty string defaults to FormatText.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatNDJSON, "jsonl":
		return FormatNDJSON, nil
	case FormatTable:
		return FormatTable, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", errors.New("invalid --output format (expected " + strings.Join(Formats, "|") + ")")
	}
}

// TextRenderer is implemented by values with their own text rendering.
type TextRenderer interface {
	RenderText(w io.Writer) error
}

// Tabular is implemented by values that can be shown as one table.
type Tabular interface {
	OutputTable() Table
}

// Streamer is implemented by values whose ndjson form is a sequence of
// records rather than the value itself.
type Streamer interface {
	Records() []interface{}
}

// Printer handles output formatting across different formats.
type Printer struct {
	w      io.Writer
	format Format
}

// NewPrinter creates a new Printer that writes to w in the given format.
func NewPrinter(w io.Writer, format Format) *Printer {
	return &Printer{
		w:      w,
		format: format,
	}
}

// Print outputs data in the configured format, applying any --jsonpath and
// --query filters found in ctx.
func (p *Printer) Print(ctx context.Context, data interface{}) error {
	if data == nil {
		return nil
	}

	updated, err := applyOutputTransforms(ctx, data, p.format)
	if err != nil {
		return err
	}
	data = updated

	switch p.format {
	case FormatJSON:
		return p.printJSON(ctx, data)
	case FormatNDJSON:
		return p.printNDJSON(ctx, data)
	case FormatYAML:
		return p.printYAML(ctx, data)
	case FormatTable:
		return p.printTable(data)
	case FormatText:
		return p.printText(ctx, data)
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
}

// printYAML outputs data as YAML. A --query result stream becomes a
// sequence of YAML documents.
func (p *Printer) printYAML(ctx context.Context, data interface{}) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()

	if query := QueryFromContext(ctx); query != "" {
		results, err := runQueryRaw(query, data)
		if err != nil {
			return err
		}
		for _, r := range results {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	}
	return enc.Encode(data)
}

// printText renders data for humans. Values implementing TextRenderer
// render themselves; query results and generic values are printed one per
// line, scalars bare and everything else as compact JSON.
func (p *Printer) printText(ctx context.Context, data interface{}) error {
	if query := QueryFromContext(ctx); query != "" {
		results, err := runQueryRaw(query, data)
		if err != nil {
			return err
		}
		for _, r := range results {
			if err := p.printTextValue(r); err != nil {
				return err
			}
		}
		return nil
	}

	if r, ok := data.(TextRenderer); ok {
		return r.RenderText(p.w)
	}
	if t, ok := data.(Tabular); ok {
		return WriteTable(p.w, t.OutputTable())
	}
	if items, ok := data.([]interface{}); ok {
		for _, item := range items {
			if err := p.printTextValue(item); err != nil {
				return err
			}
		}
		return nil
	}
	return p.printTextValue(data)
}

func (p *Printer) printTextValue(v interface{}) error {
	switch val := v.(type) {
	case nil:
		_, err := fmt.Fprintln(p.w, "null")
		return err
	case string:
		_, err := fmt.Fprintln(p.w, val)
		return err
	case bool, int, int64, float64, json.Number:
		_, err := fmt.Fprintln(p.w, val)
		return err
	}

	enc := json.NewEncoder(p.w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// printTable outputs data in tabular format. Only Table values and types
// implementing Tabular are supported.
func (p *Printer) printTable(data interface{}) error {
	switch v := data.(type) {
	case Table:
		return WriteTable(p.w, v)
	case *Table:
		if v == nil {
			return nil
		}
		return WriteTable(p.w, *v)
	case Tabular:
		return WriteTable(p.w, v.OutputTable())
	}
	return clierrors.NewUserError(
		"table output is not available for this result",
		"Use --output json|yaml|text instead",
	)
}
