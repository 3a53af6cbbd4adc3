package tui

import "github.com/charmbracelet/bubbles/key"

type pickerKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	ToggleAll key.Binding
	Next      key.Binding
	Back      key.Binding
	Quit      key.Binding
}

func (k pickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.ToggleAll, k.Next, k.Back, k.Quit}
}

func (k pickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Toggle, k.ToggleAll}, {k.Next, k.Back, k.Quit}}
}

var pickerKeys = pickerKeyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle:    key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
	ToggleAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all/none")),
	Next:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
	Back:      key.NewBinding(key.WithKeys("backspace", "shift+tab"), key.WithHelp("⌫", "back")),
	Quit:      key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("q/esc", "cancel")),
}

type previewKeyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Scroll    key.Binding
	CopyDesc  key.Binding
	CopyTitle key.Binding
	Quit      key.Binding
}

func (k previewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.CopyDesc, k.CopyTitle, k.Quit}
}

func (k previewKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev, k.Scroll}, {k.CopyDesc, k.CopyTitle, k.Quit}}
}

var previewKeys = previewKeyMap{
	Next:      key.NewBinding(key.WithKeys("n", "right", "l"), key.WithHelp("n", "next ticket")),
	Prev:      key.NewBinding(key.WithKeys("p", "left", "h"), key.WithHelp("p", "previous ticket")),
	Scroll:    key.NewBinding(key.WithKeys("up", "down", "pgup", "pgdown"), key.WithHelp("↑/↓", "scroll")),
	CopyDesc:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy description")),
	CopyTitle: key.NewBinding(key.WithKeys("Y"), key.WithHelp("Y", "copy title")),
	Quit:      key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("q", "quit")),
}
