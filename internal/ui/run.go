package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// NewProgram wraps m in a full-screen program that reports mouse motion,
// so moving the mouse brings back the header and footer.
func NewProgram(ctx context.Context, m *Model, opts ...tea.ProgramOption) *tea.Program {
	base := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	}
	return tea.NewProgram(m, append(base, opts...)...)
}
