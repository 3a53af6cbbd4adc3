package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vulnticket/vulnticket/internal/types"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

type statusMsg string

// Preview browses formatted tickets one at a time.
type Preview struct {
	tickets  []types.TicketRecord
	index    int
	viewport viewport.Model
	help     help.Model
	source   string
	cachedAt time.Time
	ready    bool
	width    int
	height   int
	status   string
}

// PreviewOptions describe where the tickets came from.
type PreviewOptions struct {
	Source   string    // input file or cache path shown in the header
	CachedAt time.Time // set when showing a cached export
}

func NewPreview(tickets []types.TicketRecord, opts PreviewOptions) Preview {
	return Preview{
		tickets:  tickets,
		help:     help.New(),
		source:   opts.Source,
		cachedAt: opts.CachedAt,
	}
}

func (m Preview) Init() tea.Cmd { return nil }

// Index returns the position of the ticket on screen.
func (m Preview) Index() int { return m.index }

const previewChrome = 6 // header, title, status and help lines plus borders

func (m Preview) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h := max(msg.Height-previewChrome, 3)
		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, h)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
			m.viewport.Height = h
		}
		m.help.Width = msg.Width
		m.refresh()
		return m, nil
	case statusMsg:
		m.status = string(msg)
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, previewKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, previewKeys.Next):
			if m.index < len(m.tickets)-1 {
				m.index++
				m.refresh()
			}
			return m, nil
		case key.Matches(msg, previewKeys.Prev):
			if m.index > 0 {
				m.index--
				m.refresh()
			}
			return m, nil
		case key.Matches(msg, previewKeys.CopyDesc):
			return m, m.copy("description", func(t types.TicketRecord) string { return t.Description })
		case key.Matches(msg, previewKeys.CopyTitle):
			return m, m.copy("title", func(t types.TicketRecord) string { return t.Title })
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Preview) refresh() {
	if !m.ready {
		return
	}
	if len(m.tickets) == 0 {
		m.viewport.SetContent("No tickets")
		return
	}
	m.viewport.SetContent(m.tickets[m.index].Description)
	m.viewport.GotoTop()
}

func (m Preview) copy(what string, field func(types.TicketRecord) string) tea.Cmd {
	if len(m.tickets) == 0 {
		return func() tea.Msg { return statusMsg("No ticket selected") }
	}
	text := field(m.tickets[m.index])
	if err := writeClipboard(text); err != nil {
		return func() tea.Msg { return statusMsg(fmt.Sprintf("Clipboard error: %v", err)) }
	}
	return func() tea.Msg { return statusMsg("Copied " + what + " to clipboard") }
}

func (m Preview) View() string {
	if !m.ready {
		return "Initializing..."
	}
	header := fmt.Sprintf("Ticket %d/%d", min(m.index+1, len(m.tickets)), len(m.tickets))
	if m.source != "" {
		header += dimStyle.Render("  " + m.source)
	}
	if !m.cachedAt.IsZero() {
		header += dimStyle.Render("  (cached " + m.cachedAt.Local().Format("2006-01-02 15:04") + ")")
	}

	var title string
	if len(m.tickets) > 0 {
		t := m.tickets[m.index]
		title = severityBadge(t.Severity) + "  " + lipgloss.NewStyle().Bold(true).Render(t.Title)
	}

	status := m.status
	if status == "" && len(m.tickets) > 0 {
		status = fmt.Sprintf("%d hosts  %s", len(m.tickets[m.index].Hosts), strings.Join(m.tickets[m.index].Applications, ", "))
	}

	return strings.Join([]string{
		titleStyle.Render(header),
		title,
		detailPaneBorderStyle.Render(m.viewport.View()),
		statusStyle.Width(m.width).Render(status),
		m.help.View(previewKeys),
	}, "\n")
}
