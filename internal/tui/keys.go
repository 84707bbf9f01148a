package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Open   key.Binding
	New    key.Binding
	Clear  key.Binding
	Quit   key.Binding
	Delete key.Binding
	Copy   key.Binding
	Back   key.Binding
	Record key.Binding
	Type   key.Binding
	Save   key.Binding
	Toggle key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		New:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new note")),
		Clear:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Copy:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Record: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "record")),
		Type:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "type")),
		Save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Toggle: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "record/stop")),
	}
}

func (k keyMap) gridHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Open, k.New, k.Clear, k.Quit}
}

func (k keyMap) detailHelp() []key.Binding {
	return []key.Binding{k.Delete, k.Copy, k.Back}
}

func (k keyMap) onboardingHelp() []key.Binding {
	return []key.Binding{k.Record, k.Type, k.Save, k.Back}
}

func (k keyMap) editorHelp() []key.Binding {
	return []key.Binding{k.Save, k.Toggle, k.Back}
}
