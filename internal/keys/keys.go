// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// AppKeyMap holds bindings handled by the root model in every state.
type AppKeyMap struct {
	Quit key.Binding
	Logs key.Binding
	Help key.Binding
}

// ShortHelp implements help.KeyMap.
func (k AppKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k AppKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Help, k.Logs, k.Quit}}
}

// SearchesKeyMap holds the saved-searches screen bindings. List bindings
// apply while the tag list has focus; form bindings while an input does.
type SearchesKeyMap struct {
	// List
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Open    key.Binding
	Actions key.Binding
	Share   key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Copy    key.Binding
	New     key.Binding
	Reload  key.Binding
	Preview key.Binding

	// Form
	NextField key.Binding
	PrevField key.Binding
	Save      key.Binding
	Cancel    key.Binding
}

// ShortHelp implements help.KeyMap.
func (k SearchesKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Actions, k.New, k.Delete}
}

// FullHelp implements help.KeyMap.
func (k SearchesKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Open, k.Actions, k.Share, k.Edit, k.Delete, k.Copy},
		{k.New, k.NextField, k.Save, k.Cancel},
		{k.Reload, k.Preview},
	}
}

// FormHelp returns the bindings shown while the form has focus.
func (k SearchesKeyMap) FormHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Save, k.Cancel}
}

// App is the root keymap.
var App = AppKeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Logs: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "logs"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
}

// Searches is the saved-searches screen keymap.
var Searches = SearchesKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "move down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "first"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "last"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter", "o"),
		key.WithHelp("enter", "open results"),
	),
	Actions: key.NewBinding(
		key.WithKeys("."),
		key.WithHelp(".", "actions"),
	),
	Share: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "share"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "delete"),
		key.WithHelp("d", "delete"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy url"),
	),
	New: key.NewBinding(
		key.WithKeys("n", "/"),
		key.WithHelp("n", "new search"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Preview: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "toggle preview"),
	),

	NextField: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back to list"),
	),
}
