package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Grid settings
	RowsDown  key.Binding
	RowsUp    key.Binding
	ColsDown  key.Binding
	ColsUp    key.Binding
	SpeedDown key.Binding
	SpeedUp   key.Binding

	// Session
	Document key.Binding
	Refresh  key.Binding
	Pause    key.Binding

	// Display
	Fullscreen key.Binding
	Logs       key.Binding
	CycleTheme key.Binding
	Help       key.Binding
	Quit       key.Binding

	// Overlays
	Escape  key.Binding
	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		RowsDown: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Fewer rows"),
		),
		RowsUp: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "More rows"),
		),
		ColsDown: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Fewer columns"),
		),
		ColsUp: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "More columns"),
		),
		SpeedDown: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "Type faster"),
		),
		SpeedUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Type slower"),
		),

		Document: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Change spreadsheet"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "Fetch now"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Pause/resume"),
		),

		Fullscreen: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Fullscreen"),
		),
		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Logs"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),

		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.RowsUp, k.ColsUp, k.SpeedUp, k.Document, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.RowsDown, k.RowsUp, k.ColsDown, k.ColsUp, k.SpeedDown, k.SpeedUp},
		{k.Document, k.Refresh, k.Pause},
		{k.Fullscreen, k.Logs, k.CycleTheme, k.Help, k.Quit},
	}
}
