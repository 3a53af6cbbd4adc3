package types

import "strings"

// Severity is a VPR label as it appears in the scan export (Critical, High, ...).
type Severity string

const (
	SevCritical  Severity = "Critical"
	SevHigh      Severity = "High"
	SevMedium    Severity = "Medium"
	SevLow       Severity = "Low"
	SevUndefined Severity = "Undefined"
)

func (s Severity) String() string { return string(s) }

// DefaultSeverityLabels is the built-in ranking, most severe first.
func DefaultSeverityLabels() []string {
	return []string{"Critical", "High", "Medium", "Low", "Undefined"}
}

// UnrankedSeverity is the rank given to labels missing from the order. It sorts
// after every configured label.
const UnrankedSeverity = 99

// SeverityOrder is an explicit ranking table over severity labels. Rank 0 is
// the most severe. Labels are matched exactly after trimming whitespace.
type SeverityOrder struct {
	labels []Severity
	rank   map[Severity]int
}

// NewSeverityOrder builds an order from labels listed most severe first.
// Blank and repeated labels are ignored; the first occurrence wins.
func NewSeverityOrder(labels []string) SeverityOrder {
	o := SeverityOrder{rank: make(map[Severity]int, len(labels))}
	for _, l := range labels {
		s := Severity(strings.TrimSpace(l))
		if s == "" {
			continue
		}
		if _, dup := o.rank[s]; dup {
			continue
		}
		o.rank[s] = len(o.labels)
		o.labels = append(o.labels, s)
	}
	return o
}

// DefaultSeverityOrder returns the order built from DefaultSeverityLabels.
func DefaultSeverityOrder() SeverityOrder {
	return NewSeverityOrder(DefaultSeverityLabels())
}

// Rank returns the position of s in the order, or UnrankedSeverity.
func (o SeverityOrder) Rank(s Severity) int {
	if r, ok := o.rank[Severity(strings.TrimSpace(string(s)))]; ok {
		return r
	}
	return UnrankedSeverity
}

// Less reports whether a is more severe than b.
func (o SeverityOrder) Less(a, b Severity) bool {
	return o.Rank(a) < o.Rank(b)
}

// Labels returns the ranked labels, most severe first.
func (o SeverityOrder) Labels() []Severity {
	out := make([]Severity, len(o.labels))
	copy(out, o.labels)
	return out
}

