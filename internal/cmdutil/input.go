// Package cmdutil holds small helpers shared by command implementations.
package cmdutil

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadInputSource reads input from a file path, or from stdin when path is "-".
// The result is trimmed of surrounding whitespace.
func ReadInputSource(stdin io.Reader, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("input file path is required")
	}
	if path == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %q: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// ResolveQuery picks the jq expression from an inline flag or a file source.
// Supplying both is an error; supplying neither yields "".
func ResolveQuery(stdin io.Reader, inline, file string) (string, error) {
	inline = strings.TrimSpace(inline)
	file = strings.TrimSpace(file)
	if inline != "" && file != "" {
		return "", fmt.Errorf("use only one of --query or --query-file")
	}
	if file != "" {
		return ReadInputSource(stdin, file)
	}
	if strings.HasPrefix(inline, "@") && len(inline) > 1 {
		return ReadInputSource(stdin, inline[1:])
	}
	return inline, nil
}
