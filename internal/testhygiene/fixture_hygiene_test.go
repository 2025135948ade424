package testhygiene

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

var (
	emailPattern    = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	homePathPattern = regexp.MustCompile(`(/Users/[A-Za-z]|/home/[A-Za-z]|[A-Z]:\\\\Users)`)

	// Spreadsheet fixtures are built in t.TempDir() with excelize, never committed.
	committedFixtureExts = map[string]struct{}{
		".xlsx": {},
		".xlsm": {},
		".xltx": {},
		".xltm": {},
		".xls":  {},
		".csv":  {},
	}
)

func TestFixtureHygiene_NoIdentifyingContent(t *testing.T) {
	repoRoot := findRepoRoot(t)

	var findings []string
	err := walkRepo(repoRoot, func(rel, path string) error {
		if !strings.HasSuffix(rel, "_test.go") || strings.HasPrefix(rel, "internal/testhygiene/") {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		content := string(raw)

		for _, email := range emailPattern.FindAllString(content, -1) {
			if !isAllowedFixtureEmailDomain(emailDomain(email)) {
				findings = append(findings, fmt.Sprintf("%s: contains non-synthetic email %q", rel, email))
			}
		}
		if m := homePathPattern.FindString(content); m != "" {
			findings = append(findings, fmt.Sprintf("%s: contains home directory path %q; use t.TempDir()", rel, m))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("fixture hygiene scan failed: %v", err)
	}

	if len(findings) > 0 {
		t.Fatalf("fixture hygiene violations:\n%s", strings.Join(findings, "\n"))
	}
}

func TestFixtureHygiene_NoCommittedSpreadsheets(t *testing.T) {
	repoRoot := findRepoRoot(t)

	var findings []string
	err := walkRepo(repoRoot, func(rel, _ string) error {
		if _, ok := committedFixtureExts[strings.ToLower(filepath.Ext(rel))]; ok {
			findings = append(findings, rel)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("fixture scan failed: %v", err)
	}

	if len(findings) > 0 {
		t.Fatalf("spreadsheet fixtures must be generated in tests, found:\n%s", strings.Join(findings, "\n"))
	}
}

// walkRepo visits every regular file under root, skipping directories the
// go tool ignores (leading "." or "_") and testdata-free vendor trees.
func walkRepo(root string, visit func(rel, path string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			base := d.Name()
			if path != root && (strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_") || base == "vendor" || base == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		return visit(filepath.ToSlash(rel), path)
	})
}

func findRepoRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("could not find repo root from %q", dir)
		}
		dir = parent
	}
}

func emailDomain(email string) string {
	parts := strings.SplitN(strings.ToLower(email), "@", 2)
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}

func isAllowedFixtureEmailDomain(domain string) bool {
	switch domain {
	case "example.com", "example.org", "example.net", "example.test", "example.invalid", "localhost":
		return true
	default:
		return strings.HasSuffix(domain, ".example.invalid")
	}
}
