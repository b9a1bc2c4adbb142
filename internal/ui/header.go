package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/griddy/internal/state"
)

// renderHeader renders the status bar: document, connectivity, query count,
// last update and the current grid settings.
func (m *Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < 100

	parts := []string{bg.Render("griddy", styles.Logo)}

	var snap state.Snapshot
	static := true
	if m.session != nil {
		snap = m.session.Store().Snapshot()
		static = m.session.Static()
	}

	switch {
	case static:
		parts = append(parts, bg.Render("● STATIC", styles.WarningText))
	case snap.Online:
		parts = append(parts, bg.Render("● ONLINE", styles.SuccessText))
	default:
		parts = append(parts, bg.Render("● OFFLINE", styles.DangerText))
	}

	if !static && snap.DocumentID != "" {
		limit := 44
		if compact {
			limit = 16
		}
		parts = append(parts,
			bg.Render("Doc:", styles.MutedText)+bg.Space()+
				bg.Render(truncateMiddle(snap.DocumentID, limit), styles.Text))
	}

	if snap.HasData {
		parts = append(parts,
			bg.Render("Queries:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", snap.QueryCount), styles.Text))
	}

	if ts := formatTimestamp(snap.LastUpdated, time.Now()); ts != "" {
		parts = append(parts, bg.Render(ts, styles.MutedText))
	}

	if snap.Loading {
		parts = append(parts, bg.Render(m.spinner.View(), styles.AccentText)+bg.Space()+
			bg.Render("Loading", styles.AccentText))
	} else if snap.LastError != nil && snap.IsFailing() {
		parts = append(parts, bg.Render("FAILING", styles.DangerText)+bg.Space()+
			bg.Render(fmt.Sprintf("×%d", snap.ConsecutiveFailures), styles.DangerText))
	}

	settings := fmt.Sprintf("%d×%d  speed %d", m.prefs.NumRows, m.prefs.NumCols, m.prefs.TypingSpeed)
	parts = append(parts, bg.Render(settings, styles.FaintText))

	if m.paused {
		parts = append(parts, bg.Render("PAUSED", styles.WarningText.Bold(true)))
	}

	content := bg.Join(parts, "  ")
	return styles.Header.Width(m.width).MaxWidth(m.width).MaxHeight(1).Render(content)
}

// renderFooter renders the short key help plus the theme indicator.
func (m *Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	m.help.Width = max(m.width-20, 10)
	hints := m.help.ShortHelpView(m.keys.ShortHelp())
	theme := bg.Render("T", styles.AccentText) + bg.Render(":", styles.FaintText) +
		bg.Render(m.theme.Name, styles.FaintText)

	content := bg.Join([]string{hints, theme}, "  ")
	return styles.Footer.Width(m.width).MaxWidth(m.width).MaxHeight(1).Render(content)
}

// renderSnackbar renders the transient notification centered on one line.
func (m *Model) renderSnackbar() string {
	styles := m.theme.Styles()
	box := styles.Snackbar
	if m.noticeErr {
		box = box.Foreground(lipgloss.Color(m.theme.Danger)).Bold(true)
	}
	text := truncate(m.notice, max(m.width-6, 1))
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box.Render(text),
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)))
}

// formatTimestamp formats the last update time with a relative hint.
func formatTimestamp(at, now time.Time) string {
	if at.IsZero() {
		return ""
	}
	since := now.Sub(at)
	out := at.Format("15:04:05")
	switch {
	case since < time.Minute:
		out += " (now)"
	case since < time.Hour:
		out += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	case since < 24*time.Hour:
		out += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}
	return out
}
