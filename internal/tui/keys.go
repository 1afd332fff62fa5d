package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Focus
	NextFocus key.Binding
	PrevFocus key.Binding

	Enter   key.Binding
	Toggle  key.Binding
	Dismiss key.Binding
	Quit    key.Binding

	// Global actions, usable from any focus
	Search  key.Binding
	Install key.Binding
	Remove  key.Binding
	Upgrade key.Binding
	Update  key.Binding
	History key.Binding

	// Single-key actions while the list has focus
	ListSearch  key.Binding
	ListInstall key.Binding
	ListRemove  key.Binding
	ListUpgrade key.Binding
	ListUpdate  key.Binding
	ListHistory key.Binding
	ListQuit    key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "previous button"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next button"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdown", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end", "bottom"),
		),

		NextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus"),
		),
		PrevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "focus back"),
		),

		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "check"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("enter", "esc", " ", "y"),
			key.WithHelp("enter", "ok"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),

		Search: key.NewBinding(
			key.WithKeys("alt+s"),
			key.WithHelp("alt+s", "search"),
		),
		Install: key.NewBinding(
			key.WithKeys("alt+i"),
			key.WithHelp("alt+i", "install"),
		),
		Remove: key.NewBinding(
			key.WithKeys("alt+r"),
			key.WithHelp("alt+r", "remove"),
		),
		Upgrade: key.NewBinding(
			key.WithKeys("alt+g"),
			key.WithHelp("alt+g", "upgrade"),
		),
		Update: key.NewBinding(
			key.WithKeys("alt+u"),
			key.WithHelp("alt+u", "update"),
		),
		History: key.NewBinding(
			key.WithKeys("alt+h"),
			key.WithHelp("alt+h", "history"),
		),

		ListSearch: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		ListInstall: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "install"),
		),
		ListRemove: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "remove"),
		),
		ListUpgrade: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "upgrade"),
		),
		ListUpdate: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "update"),
		),
		ListHistory: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "history"),
		),
		ListQuit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the hints shown in the footer for the given focus.
func (k KeyMap) ShortHelp(focus Focus) []key.Binding {
	switch focus {
	case FocusSearch:
		return []key.Binding{k.Enter, k.NextFocus, k.Install, k.Remove, k.Update, k.Quit}
	case FocusList:
		return []key.Binding{k.Up, k.Down, k.Toggle, k.ListInstall, k.ListRemove, k.ListUpdate, k.ListUpgrade, k.ListHistory, k.ListQuit}
	default:
		return []key.Binding{k.Left, k.Right, k.Enter, k.NextFocus, k.Quit}
	}
}
