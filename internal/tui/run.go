package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vulnticket/vulnticket/internal/types"
)

// RunPicker shows the selection screens and returns the user's choice.
// Leaving without confirming yields ErrCancelled.
func RunPicker(opts PickerOptions) (Selection, error) {
	final, err := tea.NewProgram(NewPicker(opts)).Run()
	if err != nil {
		return Selection{}, fmt.Errorf("error running picker: %w", err)
	}
	p, ok := final.(Picker)
	if !ok {
		return Selection{}, ErrCancelled
	}
	return p.Result()
}

// RunPreview opens the ticket browser.
func RunPreview(tickets []types.TicketRecord, opts PreviewOptions) error {
	if _, err := tea.NewProgram(NewPreview(tickets, opts), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
