// Package sheet loads the first sheet of a spreadsheet file into a Table of
// typed cell values.
package sheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrUnsupportedFormat is returned for file extensions no loader handles.
var ErrUnsupportedFormat = errors.New("unsupported file format")

type loaderFunc func(ctx context.Context, path string) (*Table, error)

var loaders = map[string]loaderFunc{
	".xlsx": loadWorkbook,
	".xlsm": loadWorkbook,
	".xltx": loadWorkbook,
	".xltm": loadWorkbook,
	".xls":  loadXLS,
	".csv":  loadCSV,
}

// Extensions returns the file extensions Load accepts, sorted.
func Extensions() []string {
	exts := make([]string, 0, len(loaders))
	for ext := range loaders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Load parses the first sheet of the file at path. The loader is chosen by
// file extension; the file is closed before Load returns.
func Load(ctx context.Context, path string) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	load, ok := loaders[ext]
	if !ok {
		if ext == "" {
			return nil, fmt.Errorf("%w: file has no extension (expected one of %s)", ErrUnsupportedFormat, strings.Join(Extensions(), ", "))
		}
		return nil, fmt.Errorf("%w %q (expected one of %s)", ErrUnsupportedFormat, ext, strings.Join(Extensions(), ", "))
	}

	start := time.Now()
	t, err := load(ctx, path)
	if err != nil {
		slog.Debug("load failed", "path", path, "error", err)
		return nil, err
	}
	slog.Debug("loaded table",
		"path", path,
		"sheet", t.Sheet,
		"rows", t.NumRows(),
		"columns", t.NumColumns(),
		"duration", time.Since(start),
	)
	return t, nil
}
