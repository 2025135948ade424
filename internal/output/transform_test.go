package output

import (
	"bytes"
	"context"
	"testing"

	clierrors "github.com/salmonumbrella/sheetdump/internal/errors"
)

func TestNormalizeJSONPath(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"  ", ""},
		{"$.items[0]", "$.items[0]"},
		{".items", "$.items"},
		{"[0]", "$[0]"},
		{"items[1]", "$.items[1]"},
		{"@.name", "@.name"},
	}
	for _, tt := range tests {
		if got := normalizeJSONPath(tt.in); got != tt.want {
			t.Errorf("normalizeJSONPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrinter_WithJSONPath(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithJSONPath(context.Background(), "items[1]")
	if err := NewPrinter(&buf, FormatText).Print(ctx, sampleReport()); err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	if got := buf.String(); got != "b\n" {
		t.Errorf("jsonpath output = %q", got)
	}
}

func TestPrinter_WithJSONPath_JSON(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithJSONPath(context.Background(), "$.name")
	ctx = WithCompactJSON(ctx, true)
	if err := NewPrinter(&buf, FormatJSON).Print(ctx, sampleReport()); err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	if got := buf.String(); got != "\"demo\"\n" {
		t.Errorf("jsonpath output = %q", got)
	}
}

func TestPrinter_WithJSONPath_Invalid(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithJSONPath(context.Background(), "$.items[")
	err := NewPrinter(&buf, FormatJSON).Print(ctx, sampleReport())
	if !clierrors.IsUserError(err) {
		t.Fatalf("expected user error, got %v", err)
	}
	if clierrors.UserSuggestion(err) == "" {
		t.Error("expected a suggestion for invalid --jsonpath")
	}
}

func TestPrinter_WithJSONPath_TableRejected(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithJSONPath(context.Background(), "$.name")
	if err := NewPrinter(&buf, FormatTable).Print(ctx, sampleReport()); !clierrors.IsUserError(err) {
		t.Errorf("expected user error, got %v", err)
	}
}

func TestNormalizeToInterface(t *testing.T) {
	got, err := normalizeToInterface(sampleReport())
	if err != nil {
		t.Fatalf("normalizeToInterface() error = %v", err)
	}
	m, ok := got.(map[string]interface{})
	if !ok {
		t.Fatalf("expected map, got %T", got)
	}
	if m["name"] != "demo" {
		t.Errorf("name = %v", m["name"])
	}

	passthrough := []interface{}{1}
	same, _ := normalizeToInterface(passthrough)
	if s, ok := same.([]interface{}); !ok || len(s) != 1 {
		t.Errorf("slices should pass through, got %#v", same)
	}
}
