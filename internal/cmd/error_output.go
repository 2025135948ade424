package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	clierrors "github.com/salmonumbrella/sheetdump/internal/errors"
	"github.com/salmonumbrella/sheetdump/internal/output"
	"github.com/salmonumbrella/sheetdump/internal/sheet"
)

func validateErrorFormat(format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "auto", "text", "json", "yaml":
		return nil
	default:
		return clierrors.NewUserError(
			fmt.Sprintf("invalid --error-format %q", format),
			"Use one of: auto, text, json, yaml",
		)
	}
}

// effectiveErrorFormat resolves "auto" from the output format so a failing
// json run still emits json on stderr.
func effectiveErrorFormat(ctx context.Context) string {
	format := strings.ToLower(strings.TrimSpace(ErrorFormatFromContext(ctx)))
	if format == "" || format == "auto" {
		switch output.FormatFromContext(ctx) {
		case output.FormatJSON, output.FormatNDJSON:
			return "json"
		case output.FormatYAML:
			return "yaml"
		default:
			return "text"
		}
	}
	return format
}

func printCommandError(ctx context.Context, err error) {
	if err == nil {
		return
	}
	w := stderrFromContext(ctx)

	switch effectiveErrorFormat(ctx) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		_ = enc.Encode(buildErrorEnvelope(err))
		return
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		_ = enc.Encode(buildErrorEnvelope(err))
		_ = enc.Close()
		return
	}

	if printsOnStdout(err) {
		w = stdoutFromContext(ctx)
	}
	_, _ = fmt.Fprintln(w, err)
	if suggestion := clierrors.UserSuggestion(err); suggestion != "" {
		_, _ = fmt.Fprintf(w, "Hint: %s\n", suggestion)
	}
}

// printsOnStdout reports whether a plain-text error is one of the inspect
// results ("file not found", "failed to read file") that belong on stdout.
func printsOnStdout(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	return clierrors.IsFileNotFound(err) || clierrors.IsLoadError(err)
}

func buildErrorEnvelope(err error) map[string]interface{} {
	errMap := map[string]interface{}{
		"message":   err.Error(),
		"category":  "system",
		"exit_code": ExitCode(err),
	}
	if ExitCode(err) == ExitUser || ExitCode(err) == ExitNotFound {
		errMap["category"] = "user"
	}

	if suggestion := clierrors.UserSuggestion(err); suggestion != "" {
		errMap["suggestion"] = suggestion
	}

	var notFound *clierrors.FileNotFoundError
	if errors.As(err, &notFound) {
		errMap["type"] = "not_found"
		errMap["path"] = notFound.Path
	}

	var loadErr *clierrors.LoadError
	if errors.As(err, &loadErr) {
		errMap["type"] = "load"
		errMap["path"] = loadErr.Path
		if errors.Is(err, sheet.ErrUnsupportedFormat) {
			errMap["type"] = "unsupported_format"
		}
	}

	var validationErr *clierrors.ValidationError
	if errors.As(err, &validationErr) {
		errMap["type"] = "validation"
		errMap["field"] = validationErr.Field
	}

	if errors.Is(err, context.Canceled) {
		errMap["type"] = "canceled"
	}

	return map[string]interface{}{"error": errMap}
}
