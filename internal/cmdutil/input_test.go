package cmdutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadInputSource(t *testing.T) {
	tmpDir := t.TempDir()
	queryFile := filepath.Join(tmpDir, "query.jq")
	if err := os.WriteFile(queryFile, []byte("  .cells[] | .value  \n"), 0o644); err != nil {
		t.Fatalf("failed to write query file: %v", err)
	}

	tests := []struct {
		name    string
		stdin   string
		path    string
		want    string
		wantErr string
	}{
		{name: "file trimmed", path: queryFile, want: ".cells[] | .value"},
		{name: "stdin", stdin: "\n.columns\n", path: "-", want: ".columns"},
		{name: "empty path", path: "", wantErr: "input file path is required"},
		{name: "missing file", path: filepath.Join(tmpDir, "nope.jq"), wantErr: "failed to read file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadInputSource(strings.NewReader(tt.stdin), tt.path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("ReadInputSource() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadInputSource() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadInputSource() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveQuery(t *testing.T) {
	tmpDir := t.TempDir()
	queryFile := filepath.Join(tmpDir, "q.jq")
	if err := os.WriteFile(queryFile, []byte(".row_count"), 0o644); err != nil {
		t.Fatalf("failed to write query file: %v", err)
	}

	tests := []struct {
		name    string
		inline  string
		file    string
		want    string
		wantErr bool
	}{
		{name: "neither", want: ""},
		{name: "inline", inline: " .columns ", want: ".columns"},
		{name: "file", file: queryFile, want: ".row_count"},
		{name: "inline @file", inline: "@" + queryFile, want: ".row_count"},
		{name: "bare @ is literal", inline: "@", want: "@"},
		{name: "both", inline: ".a", file: queryFile, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveQuery(strings.NewReader(""), tt.inline, tt.file)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveQuery() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ResolveQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}
