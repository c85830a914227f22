package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Play        key.Binding
	ZoomIn      key.Binding
	ZoomOut     key.Binding
	Home        key.Binding
	ScrollLeft  key.Binding
	ScrollRight key.Binding
	Cancel      key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Play: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "play/pause"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "zoom out"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "0"),
			key.WithHelp("0", "start"),
		),
		ScrollLeft: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "scroll"),
		),
		ScrollRight: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "scroll"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel drag"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// DragKeyMap returns keybindings active while the pointer is captured.
// Zoom and scroll keys are disabled so the drag keeps its coordinate frame.
func DragKeyMap() KeyMap {
	km := DefaultKeyMap()
	km.ZoomIn.SetEnabled(false)
	km.ZoomOut.SetEnabled(false)
	km.ScrollLeft.SetEnabled(false)
	km.ScrollRight.SetEnabled(false)
	km.Home.SetEnabled(false)
	return km
}
