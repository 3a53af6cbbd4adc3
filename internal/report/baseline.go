package report

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"strconv"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/vulnticket/vulnticket/internal/types"
)

// DefaultBaselinePath is where `baseline update` records exported tickets.
const DefaultBaselinePath = "vulnticket.baseline.json"

// Baseline is the set of ticket keys already exported to the tracker.
type Baseline struct {
	Items map[string]bool `json:"items"`
}

// TicketKey is a stable fingerprint of a (finding, severity) pair.
func TicketKey(k types.GroupKey) string {
	d := xxhash.New()
	_, _ = d.WriteString(k.Finding)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(string(k.Severity))
	return strconv.FormatUint(d.Sum64(), 16)
}

// LoadBaseline reads path. A missing file yields an empty baseline.
func LoadBaseline(path string) (Baseline, error) {
	b := Baseline{Items: map[string]bool{}}
	f, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return b, nil
	}
	if err != nil {
		return b, err
	}
	if err := json.Unmarshal(f, &b); err != nil {
		return Baseline{Items: map[string]bool{}}, err
	}
	if b.Items == nil {
		b.Items = map[string]bool{}
	}
	return b, nil
}

// SaveBaseline merges the keys of tickets into the baseline at path.
func SaveBaseline(path string, tickets []types.TicketRecord) error {
	b, err := LoadBaseline(path)
	if err != nil {
		return err
	}
	for _, t := range tickets {
		b.Items[t.Key] = true
	}
	buf, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

// FilterNewTickets drops tickets whose key is already baselined.
func FilterNewTickets(tickets []types.TicketRecord, base Baseline) []types.TicketRecord {
	out := []types.TicketRecord{}
	for _, t := range tickets {
		if !base.Items[t.Key] {
			out = append(out, t)
		}
	}
	return out
}
