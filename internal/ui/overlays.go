package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/griddy/internal/logtail"
)

// renderHelp renders the help overlay.
func (m *Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	titles := []string{"Grid", "Spreadsheet", "Display"}
	for i, group := range m.keys.FullHelp() {
		b.WriteString(styles.AccentText.Bold(true).Render(titles[i]))
		b.WriteString("\n")
		for _, binding := range group {
			h := binding.Help()
			keyStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color(m.theme.Warning)).
				Width(10)
			b.WriteString(keyStyle.Render(h.Key))
			b.WriteString(styles.Text.Render(h.Desc))
			b.WriteString("\n")
		}
		if i < len(titles)-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("Settings are saved to prefs.toml"))

	return m.placeModal(styles.Modal.Width(44).Render(b.String()))
}

func (m *Model) openDocument() tea.Cmd {
	m.overlay = overlayDocument
	m.docInput.SetValue(m.prefs.DocumentID)
	m.docInput.CursorEnd()
	return m.docInput.Focus()
}

func (m *Model) handleDocumentKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.docInput.Blur()
		m.overlay = overlayNone
		return nil
	case key.Matches(msg, m.keys.Confirm):
		value := strings.TrimSpace(m.docInput.Value())
		m.docInput.Blur()
		m.overlay = overlayNone
		if value == "" || value == m.prefs.DocumentID {
			return nil
		}
		p := m.prefs
		p.DocumentID = value
		m.logger.Info("document changed", zap.String("document_id", value))
		m.commitPrefs(p)
		return nil
	}
	var cmd tea.Cmd
	m.docInput, cmd = m.docInput.Update(msg)
	return cmd
}

// renderDocument renders the document ID prompt.
func (m *Model) renderDocument() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Spreadsheet"))
	b.WriteString("\n\n")
	b.WriteString(m.docInput.View())
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("enter to load · esc to cancel"))
	return m.placeModal(styles.Modal.Width(min(60, max(m.width-4, 20))).Render(b.String()))
}

func (m *Model) openLogs() {
	m.overlay = overlayLogs
	m.refreshLogs()
}

func (m *Model) closeLogs() {
	m.overlay = overlayNone
	if m.logTimer != 0 {
		m.driver.Cancel(m.logTimer)
		m.logTimer = 0
	}
}

// refreshLogs reads the log tail off the loop and schedules the next read
// while the overlay stays open.
func (m *Model) refreshLogs() {
	path := m.logPath
	m.driver.Go(func() func() {
		lines, err := logtail.Read(path, logLines)
		return func() {
			if m.overlay != overlayLogs {
				return
			}
			m.setLogContent(lines, err)
			m.logTimer = m.driver.Schedule(LogRefresh, func() {
				m.logTimer = 0
				if m.overlay == overlayLogs {
					m.refreshLogs()
				}
			})
		}
	})
}

func (m *Model) setLogContent(lines []string, err error) {
	atBottom := m.logView.AtBottom() || m.logView.TotalLineCount() == 0
	var content string
	switch {
	case m.logPath == "":
		content = "File logging is disabled."
	case err != nil:
		content = "Could not read log: " + err.Error()
	case len(lines) == 0:
		content = "No log entries yet."
	default:
		out := make([]string, len(lines))
		for i, e := range logtail.ParseAll(lines) {
			out[i] = e.String()
		}
		content = strings.Join(out, "\n")
	}
	m.logView.SetContent(content)
	if atBottom {
		m.logView.GotoBottom()
	}
}

func (m *Model) handleLogsKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Escape, m.keys.Logs, m.keys.Quit) {
		m.closeLogs()
		return nil
	}
	var cmd tea.Cmd
	m.logView, cmd = m.logView.Update(msg)
	return cmd
}

// renderLogs renders the log overlay.
func (m *Model) renderLogs() string {
	styles := m.theme.Styles()
	title := styles.Text.Bold(true).Render("Logs") + "  " +
		styles.FaintText.Render(truncateMiddle(m.logPath, max(m.width-20, 10)))
	body := title + "\n" + m.logView.View()
	box := styles.Modal.Padding(0, 1).Width(max(m.width-4, 10))
	return m.placeModal(box.Render(body))
}

func (m *Model) placeModal(content string) string {
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)),
	)
}
