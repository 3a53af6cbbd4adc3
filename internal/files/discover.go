// Package files locates scan exports on disk and keeps vulnticket's
// bookkeeping files out of version control.
package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// InputPattern matches the spreadsheet types vulnticket reads.
const InputPattern = "*.{xlsx,xlsm,csv}"

// lockPrefix marks the owner files Excel leaves next to open workbooks.
const lockPrefix = "~$"

// Discover lists spreadsheets directly inside dir, sorted by name. Output
// files written by vulnticket itself are skipped.
func Discover(dir string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), InputPattern)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, m := range matches {
		if skip(m) {
			continue
		}
		out = append(out, filepath.Join(dir, m))
	}
	sort.Strings(out)
	return out, nil
}

// ResolveInput turns an --input value into one file path. Plain paths are
// returned unchanged; glob patterns must match exactly one spreadsheet.
func ResolveInput(arg string) (string, error) {
	if !isPattern(arg) {
		return arg, nil
	}
	matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
	if err != nil {
		return "", fmt.Errorf("bad input pattern %q: %w", arg, err)
	}
	var keep []string
	for _, m := range matches {
		if !skip(filepath.Base(m)) {
			keep = append(keep, m)
		}
	}
	switch len(keep) {
	case 0:
		return "", fmt.Errorf("no spreadsheet matches %q", arg)
	case 1:
		return keep[0], nil
	}
	sort.Strings(keep)
	return "", fmt.Errorf("%q matches %d files (%s); pick one", arg, len(keep), strings.Join(keep, ", "))
}

// ErrNoInputs is returned when a directory holds no spreadsheets.
var ErrNoInputs = errors.New("no .xlsx or .csv files found")

func isPattern(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

func skip(name string) bool {
	if strings.HasPrefix(name, lockPrefix) {
		return true
	}
	return strings.HasPrefix(name, "JiraVulnerabilityExport") || strings.HasPrefix(name, "JiraVulnerabilityImport")
}
