package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/vulnticket/vulnticket/internal/types"
)

// FileName is the last-export cache kept in the output directory.
const FileName = ".vulnticket_last_export.json"

// ExportResults stores the tickets and metadata from the last export.
type ExportResults struct {
	Tickets   []types.TicketRecord `json:"tickets"`
	Timestamp time.Time            `json:"timestamp"`
	Input     string               `json:"input"`
	Count     int                  `json:"count"`
}

func resultsPath(dir string) string {
	return filepath.Join(dir, FileName)
}

// SaveTickets caches the tickets of an export in dir.
func SaveTickets(dir, input string, tickets []types.TicketRecord) error {
	results := ExportResults{
		Tickets:   tickets,
		Timestamp: time.Now(),
		Input:     input,
		Count:     len(tickets),
	}
	b, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(resultsPath(dir), b, 0644)
}

// LoadTickets loads the last export cached in dir.
func LoadTickets(dir string) (ExportResults, error) {
	var results ExportResults
	f, err := os.ReadFile(resultsPath(dir))
	if err != nil {
		return results, err
	}
	if err := json.Unmarshal(f, &results); err != nil {
		return results, err
	}
	return results, nil
}
