// Package validate checks that an input table carries the columns the
// pipeline needs before any row is processed.
package validate

import (
	"fmt"
	"strings"
)

// MissingFieldsError reports required columns absent from the input header.
type MissingFieldsError struct {
	Missing []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required columns: " + strings.Join(e.Missing, ", ")
}

// RequiredFields returns a *MissingFieldsError naming every entry of required
// that is not an exact, case-sensitive match of a header name. Names are
// reported once, in the order they appear in required.
func RequiredFields(header, required []string) error {
	have := make(map[string]bool, len(header))
	for _, h := range header {
		have[h] = true
	}
	seen := map[string]bool{}
	var missing []string
	for _, r := range required {
		if have[r] || seen[r] {
			continue
		}
		seen[r] = true
		missing = append(missing, r)
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Missing: missing}
	}
	return nil
}

// NonEmpty returns an error naming what when values has no non-blank entry.
func NonEmpty(what string, values []string) error {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return nil
		}
	}
	return fmt.Errorf("select at least one %s", what)
}
