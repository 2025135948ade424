package cmd

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	clierrors "github.com/salmonumbrella/sheetdump/internal/errors"
	"github.com/salmonumbrella/sheetdump/internal/inspect"
	"github.com/salmonumbrella/sheetdump/internal/sheet"
	"github.com/salmonumbrella/sheetdump/internal/ui"
	"github.com/salmonumbrella/sheetdump/internal/validate"
)

// runInspect checks that path exists, loads its first sheet and prints the
// report. Nothing is written to stdout unless the load succeeds.
func runInspect(ctx context.Context, path string) error {
	if err := validate.NonEmpty("path", path); err != nil {
		return &clierrors.FileNotFoundError{Path: path}
	}
	if err := validate.PathExists(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &clierrors.FileNotFoundError{Path: path}
		}
		return clierrors.WrapLoadError(path, err)
	}

	table, err := sheet.Load(ctx, path)
	if err != nil {
		return clierrors.WrapLoadError(path, err)
	}
	if table.SheetCount > 1 {
		ui.FromContext(ctx).Warning("%s has %d sheets; showing only the first (%q)", path, table.SheetCount, table.Sheet)
	}

	report := inspect.NewReport(table)
	slog.Debug("printing report", "rows", report.RowCount, "columns", report.ColumnCount, "cells", len(report.Cells))
	return printerForContext(ctx).Print(ctx, report)
}
