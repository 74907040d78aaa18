package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the shell.
type KeyMap struct {
	// Scrolling
	ScrollDown   key.Binding
	ScrollUp     key.Binding
	HalfPageDown key.Binding
	HalfPageUp   key.Binding

	// Navigation
	OpenURL      key.Binding
	Back         key.Binding
	Forward      key.Binding
	Home         key.Binding // second key of "gh"
	SetHome      key.Binding
	Reload       key.Binding
	Bookmark     key.Binding
	OpenBookmark key.Binding

	// Links
	FollowLink key.Binding
	NextLink   key.Binding
	PrevLink   key.Binding
	OpenLink   key.Binding

	// Modes
	CommandMode   key.Binding
	HistoryToggle key.Binding
	Help          key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the default vim-style keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ScrollDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "scroll down"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "scroll up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("Ctrl+d", "half page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("Ctrl+u", "half page up"),
		),
		OpenURL: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open address"),
		),
		Back: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "go back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "go forward"),
		),
		Home: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("gh", "go home"),
		),
		SetHome: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "set home"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload page"),
		),
		Bookmark: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "bookmark page"),
		),
		OpenBookmark: key.NewBinding(
			key.WithKeys("'"),
			key.WithHelp("'", "open bookmark"),
		),
		FollowLink: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "follow link"),
		),
		NextLink: key.NewBinding(
			key.WithKeys("n", "tab"),
			key.WithHelp("n/Tab", "next link"),
		),
		PrevLink: key.NewBinding(
			key.WithKeys("N", "shift+tab"),
			key.WithHelp("N/S-Tab", "previous link"),
		),
		OpenLink: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "open selected link"),
		),
		CommandMode: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command mode"),
		),
		HistoryToggle: key.NewBinding(
			key.WithKeys("ctrl+h"),
			key.WithHelp("Ctrl+h", "toggle history"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
