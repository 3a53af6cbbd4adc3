package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the user leaves the picker without confirming.
var ErrCancelled = errors.New("selection cancelled")

type stage int

const (
	stageFile stage = iota
	stageEnv
	stageSeverity
	stageDone
)

// Choice is one selectable line. Value is returned, Label is shown.
type Choice struct {
	Value string
	Label string
}

// PickerOptions seed the picker.
type PickerOptions struct {
	// Files are the candidate inputs. With a single file, or when File is set,
	// the file stage is skipped.
	Files []string
	File  string

	Environments []Choice
	Severities   []string

	// Preselected values, e.g. from config defaults or the last session.
	SelectedEnvironments []string
	SelectedSeverities   []string
}

// Selection is the picker's result.
type Selection struct {
	File         string
	Environments []string
	Severities   []string // empty means every severity
}

type checklist struct {
	items   []Choice
	checked []bool
	cursor  int
}

func newChecklist(items []Choice, preselected []string) checklist {
	c := checklist{items: items, checked: make([]bool, len(items))}
	want := map[string]bool{}
	for _, v := range preselected {
		want[v] = true
	}
	for i, it := range items {
		c.checked[i] = want[it.Value]
	}
	return c
}

func (c *checklist) move(delta int) {
	if len(c.items) == 0 {
		return
	}
	c.cursor = (c.cursor + delta + len(c.items)) % len(c.items)
}

func (c *checklist) toggle() {
	if len(c.items) > 0 {
		c.checked[c.cursor] = !c.checked[c.cursor]
	}
}

// toggleAll checks everything unless everything is already checked.
func (c *checklist) toggleAll() {
	all := true
	for _, v := range c.checked {
		all = all && v
	}
	for i := range c.checked {
		c.checked[i] = !all
	}
}

func (c checklist) values() []string {
	var out []string
	for i, it := range c.items {
		if c.checked[i] {
			out = append(out, it.Value)
		}
	}
	return out
}

// Picker is the bubbletea model for choosing an input file, environments and
// severities.
type Picker struct {
	stage     stage
	firstStep stage
	files     []string
	fileIdx   int
	envs      checklist
	sevs      checklist
	help      help.Model
	errMsg    string
	cancelled bool
	width     int
	result    Selection
}

// NewPicker builds a picker positioned on its first needed stage.
func NewPicker(opts PickerOptions) Picker {
	sevChoices := make([]Choice, 0, len(opts.Severities))
	for _, s := range opts.Severities {
		sevChoices = append(sevChoices, Choice{Value: s, Label: s})
	}
	p := Picker{
		files: opts.Files,
		envs:  newChecklist(opts.Environments, opts.SelectedEnvironments),
		sevs:  newChecklist(sevChoices, opts.SelectedSeverities),
		help:  help.New(),
	}
	switch {
	case opts.File != "":
		p.result.File = opts.File
		p.stage = stageEnv
	case len(opts.Files) == 1:
		p.result.File = opts.Files[0]
		p.stage = stageEnv
	default:
		p.stage = stageFile
	}
	p.firstStep = p.stage
	return p
}

// Result returns the confirmed selection, or ErrCancelled.
func (p Picker) Result() (Selection, error) {
	if p.cancelled || p.stage != stageDone {
		return Selection{}, ErrCancelled
	}
	return p.result, nil
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.help.Width = msg.Width
		return p, nil
	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return p, nil
}

func (p Picker) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, pickerKeys.Quit) {
		p.cancelled = true
		return p, tea.Quit
	}
	p.errMsg = ""

	if p.stage == stageFile {
		switch {
		case key.Matches(msg, pickerKeys.Up):
			if len(p.files) > 0 {
				p.fileIdx = (p.fileIdx - 1 + len(p.files)) % len(p.files)
			}
		case key.Matches(msg, pickerKeys.Down):
			if len(p.files) > 0 {
				p.fileIdx = (p.fileIdx + 1) % len(p.files)
			}
		case key.Matches(msg, pickerKeys.Next):
			if len(p.files) == 0 {
				p.errMsg = "no spreadsheets found"
				return p, nil
			}
			p.result.File = p.files[p.fileIdx]
			p.stage = stageEnv
		}
		return p, nil
	}

	list := &p.envs
	if p.stage == stageSeverity {
		list = &p.sevs
	}
	switch {
	case key.Matches(msg, pickerKeys.Up):
		list.move(-1)
	case key.Matches(msg, pickerKeys.Down):
		list.move(1)
	case key.Matches(msg, pickerKeys.Toggle):
		list.toggle()
	case key.Matches(msg, pickerKeys.ToggleAll):
		list.toggleAll()
	case key.Matches(msg, pickerKeys.Back):
		if p.stage > p.firstStep {
			p.stage--
		}
	case key.Matches(msg, pickerKeys.Next):
		if p.stage == stageEnv {
			if len(p.envs.values()) == 0 {
				p.errMsg = "select at least one environment"
				return p, nil
			}
			p.stage = stageSeverity
			return p, nil
		}
		p.result.Environments = p.envs.values()
		p.result.Severities = p.sevs.values()
		p.stage = stageDone
		return p, tea.Quit
	}
	return p, nil
}

func (p Picker) View() string {
	if p.stage == stageDone || p.cancelled {
		return ""
	}
	var sb strings.Builder
	switch p.stage {
	case stageFile:
		sb.WriteString(titleStyle.Render("Select input file") + "\n\n")
		if len(p.files) == 0 {
			sb.WriteString(dimStyle.Render("  no .xlsx or .csv files found") + "\n")
		}
		for i, f := range p.files {
			cursor := "  "
			name := filepath.Base(f)
			if i == p.fileIdx {
				cursor = cursorStyle.Render("> ")
				name = cursorStyle.Render(name)
			}
			sb.WriteString(cursor + name + "\n")
		}
	case stageEnv:
		sb.WriteString(titleStyle.Render("Environments") + dimStyle.Render(filepath.Base(p.result.File)) + "\n\n")
		sb.WriteString(renderChecklist(p.envs))
	case stageSeverity:
		sb.WriteString(titleStyle.Render("Severities") + dimStyle.Render("none selected = all") + "\n\n")
		sb.WriteString(renderChecklist(p.sevs))
	}
	if p.errMsg != "" {
		sb.WriteString("\n" + errorStyle.Render(p.errMsg) + "\n")
	}
	sb.WriteString("\n" + p.help.View(pickerKeys) + "\n")
	return sb.String()
}

func renderChecklist(c checklist) string {
	var sb strings.Builder
	for i, it := range c.items {
		cursor := "  "
		if i == c.cursor {
			cursor = cursorStyle.Render("> ")
		}
		box := "[ ]"
		if c.checked[i] {
			box = checkedStyle.Render("[x]")
		}
		label := it.Label
		if label == "" || label == it.Value {
			label = it.Value
		} else {
			label = fmt.Sprintf("%s %s", it.Value, dimStyle.Render("("+it.Label+")"))
		}
		sb.WriteString(cursor + box + " " + label + "\n")
	}
	return sb.String()
}
