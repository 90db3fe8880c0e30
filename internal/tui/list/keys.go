package listview

import "github.com/charmbracelet/bubbles/key"

// KeyMap binds picker actions to keys.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Toggle   key.Binding
	Confirm  key.Binding
	Remove   key.Binding
	ClearAll key.Binding
	Cancel   key.Binding
}

// DefaultKeyMap returns the bindings used by NewPickerModel. Letters are left
// to the search input, so navigation has no vim-style aliases.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "first"),
		),
		End: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "last"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "done"),
		),
		Remove: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "remove last"),
		),
		ClearAll: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "clear all"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// shortHelp lists the bindings shown in the footer.
func (k KeyMap) shortHelp(multiple bool) []key.Binding {
	if multiple {
		return []key.Binding{k.Up, k.Down, k.Toggle, k.Confirm, k.ClearAll, k.Cancel}
	}
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Cancel}
}
