package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the chrome colors. Cells take their colors from the
// configured palette; only the text drawn over them is themed.
type Theme struct {
	Name string

	Background string // behind the grid and modals
	Surface    string // header, footer and snackbar

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string

	CellText string
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Logo     lipgloss.Style
	Snackbar lipgloss.Style
	Modal    lipgloss.Style
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func bar(bg, text string) lipgloss.Style {
	return fg(text).Background(lipgloss.Color(bg))
}

// Styles builds the styles for t.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),

		Header:   bar(t.Surface, t.Text).Padding(0, 1),
		Footer:   bar(t.Surface, t.Muted).Padding(0, 1),
		Logo:     fg(t.Warning).Bold(true),
		Snackbar: bar(t.Surface, t.Text).Padding(0, 2),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Accent)).
			Padding(1, 2),
	}
}

// WithBackground returns s with bgColor under every text style, so
// segments joined on a bar keep an unbroken background.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	for _, st := range []*lipgloss.Style{
		&s.Text, &s.MutedText, &s.FaintText, &s.AccentText,
		&s.SuccessText, &s.WarningText, &s.DangerText, &s.Logo,
	} {
		*st = st.Background(bg)
	}
	return s
}

// themes lists the available themes in cycle order. The first is the
// fallback for unknown names.
var themes = []Theme{
	{
		// EdenEast/nightfox.nvim
		Name: "Nightfox",
		Background: "#131a24", Surface: "#192330",
		Text: "#cdcecf", Muted: "#738091", Faint: "#71839b",
		Accent: "#719cd6", Success: "#81b29a", Warning: "#dbc074", Danger: "#c94f6d",
		CellText: "#ffffff",
	},
	{
		// rebelot/kanagawa.nvim
		Name: "Kanagawa",
		Background: "#16161D", Surface: "#1F1F28",
		Text: "#DCD7BA", Muted: "#C8C093", Faint: "#727169",
		Accent: "#7E9CD8", Success: "#98BB6C", Warning: "#E6C384", Danger: "#E46876",
		CellText: "#F2ECBC",
	},
	{
		// Tailwind slate/sky
		Name: "Slate",
		Background: "#020617", Surface: "#0f172a",
		Text: "#f1f5f9", Muted: "#94a3b8", Faint: "#64748b",
		Accent: "#38bdf8", Success: "#22c55e", Warning: "#f59e0b", Danger: "#ef4444",
		CellText: "#f8fafc",
	},
}

// GetTheme returns the named theme, or the first theme when unknown.
func GetTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// NextTheme returns the theme after current in the cycle.
func NextTheme(current string) string {
	for i, t := range themes {
		if t.Name == current {
			return themes[(i+1)%len(themes)].Name
		}
	}
	return themes[0].Name
}

// ThemeNames returns the theme names in cycle order.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
