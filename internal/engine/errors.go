package engine

import (
	"fmt"
	"strings"
)

// EmptyResultError reports that the selected filters matched no rows. It keeps
// the attempted selection so the caller can tell the user what to change.
type EmptyResultError struct {
	Environments []string
	Severities   []string
	Rows         int // rows considered before filtering
}

func (e *EmptyResultError) Error() string {
	sev := "all"
	if len(e.Severities) > 0 {
		sev = strings.Join(e.Severities, ", ")
	}
	return fmt.Sprintf("no rows match environments [%s] and severities [%s] (%d rows in input)",
		strings.Join(e.Environments, ", "), sev, e.Rows)
}
