// Package validate checks user-supplied arguments before any work is done.
package validate

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// NonEmpty validates that a required string field is not empty.
func NonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s: cannot be empty", field)
	}
	return nil
}

// OneOf validates that value is one of allowed (case-insensitive).
func OneOf(field, value string, allowed ...string) error {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return fmt.Errorf("%s: must be one of %s, got %q", field, strings.Join(allowed, "|"), value)
}

// PathExists reports whether path names an existing file system entry.
// The returned error wraps fs.ErrNotExist when it does not; other stat
// failures (permissions, bad names) are returned as-is.
func PathExists(path string) error {
	if err := NonEmpty("path", path); err != nil {
		return err
	}
	if strings.ContainsRune(path, 0) {
		return fmt.Errorf("path: contains NUL byte")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", path, fs.ErrNotExist)
		}
		return err
	}
	return nil
}
