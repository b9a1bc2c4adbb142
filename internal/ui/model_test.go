package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/griddy/internal/grid"
	"github.com/five82/griddy/internal/prefs"
	"github.com/five82/griddy/internal/query"
	"github.com/five82/griddy/internal/sched"
	"github.com/five82/griddy/internal/session"
)

// manualDriver runs the model on a virtual clock.
type manualDriver struct{ *sched.Manual }

func (manualDriver) Handle(tea.Msg) bool { return false }
func (manualDriver) Cmd() tea.Cmd        { return nil }

type fixture struct {
	model *Model
	clock *sched.Manual
	grid  *grid.Grid
	ctrl  *session.Controller
	saved []prefs.Prefs
}

func newFixture(t *testing.T, logPath string) *fixture {
	t.Helper()
	f := &fixture{clock: sched.NewManual()}
	p := prefs.Prefs{NumRows: 2, NumCols: 2, TypingSpeed: 1, DocumentID: "doc", Theme: "Slate"}
	f.grid = grid.New(grid.Options{
		Rows:        p.NumRows,
		Cols:        p.NumCols,
		TypingSpeed: p.TypingSpeed,
		Scheduler:   f.clock,
		Seed:        7,
	})
	f.model = New(Options{
		Grid:   f.grid,
		Driver: manualDriver{f.clock},
		Prefs:  p,
		SavePrefs: func(p prefs.Prefs) error {
			f.saved = append(f.saved, p)
			return nil
		},
		LogPath: logPath,
	})
	f.ctrl = session.New(session.Options{
		Target:     f.model.Target(),
		Scheduler:  f.clock,
		Notify:     f.model.Notify,
		DocumentID: p.DocumentID,
		Fallback:   query.NewList([]string{"alpha", "beta", "gamma"}),
	})
	f.model.AttachSession(f.ctrl)
	f.model.Init()
	f.send(tea.WindowSizeMsg{Width: 60, Height: 20})
	return f
}

func (f *fixture) send(msg tea.Msg) tea.Cmd {
	_, cmd := f.model.Update(msg)
	return cmd
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// press sends each key and lets completions queued by it run, as the
// program loop would between key presses.
func (f *fixture) press(keys ...string) {
	for _, k := range keys {
		f.send(keyMsg(k))
		f.clock.Flush()
	}
}

func TestModel_StartsGridFromSession(t *testing.T) {
	f := newFixture(t, "")
	assert.True(t, f.grid.Running())
	assert.Equal(t, session.MsgStatic, f.model.Notice())
}

func TestModel_RowAndColumnKeysResizeAndSave(t *testing.T) {
	f := newFixture(t, "")

	f.press("R")
	assert.Equal(t, 3, f.grid.Rows())
	require.NotEmpty(t, f.saved)
	assert.Equal(t, 3, f.saved[len(f.saved)-1].NumRows)

	f.press("r", "r", "r")
	assert.Equal(t, 1, f.grid.Rows())
	assert.Len(t, f.saved, 3, "no save once clamped at the minimum")

	f.press("C")
	assert.Equal(t, 3, f.grid.Cols())
	assert.Equal(t, 3, f.model.Prefs().NumCols)
	assert.True(t, f.grid.Running(), "resizing keeps the animation going")
}

func TestModel_QuickChangesSaveLatestLast(t *testing.T) {
	f := newFixture(t, "")

	// The second press lands while the first write is still in flight.
	f.send(keyMsg("R"))
	f.send(keyMsg("R"))
	require.Len(t, f.saved, 1)
	assert.Equal(t, 3, f.saved[0].NumRows)
	assert.Equal(t, 4, f.grid.Rows())

	// A reload of the older file contents does not roll the grid back.
	f.send(PrefsChangedMsg{Prefs: f.saved[0]})
	assert.Equal(t, 4, f.grid.Rows())

	f.clock.Flush()
	require.Len(t, f.saved, 2)
	assert.Equal(t, 4, f.saved[1].NumRows)

	// Once writes settle, reloads apply again.
	f.send(PrefsChangedMsg{Prefs: f.saved[0]})
	assert.Equal(t, 3, f.grid.Rows())
}

func TestModel_SpeedKeys(t *testing.T) {
	f := newFixture(t, "")
	f.press("+", "=")
	assert.Equal(t, 3, f.grid.TypingSpeed())
	f.press("-", "-", "-", "-")
	assert.Equal(t, grid.MinTypingSpeed, f.grid.TypingSpeed())
	assert.Equal(t, grid.MinTypingSpeed, f.saved[len(f.saved)-1].TypingSpeed)
}

func TestModel_PauseSurvivesSourceChanges(t *testing.T) {
	f := newFixture(t, "")
	f.press(" ")
	assert.True(t, f.model.Paused())
	assert.False(t, f.grid.Running())

	f.ctrl.SetOnline(false)
	assert.False(t, f.grid.Running(), "a new source does not unpause")

	f.press(" ")
	assert.True(t, f.grid.Running())
}

func TestModel_ChromeAutoHides(t *testing.T) {
	f := newFixture(t, "")
	assert.True(t, f.model.ChromeVisible())
	assert.Contains(t, f.model.View(), "griddy")

	f.clock.Advance(ChromeTimeout)
	assert.False(t, f.model.ChromeVisible())

	f.send(tea.MouseMsg{Action: tea.MouseActionMotion, X: 3, Y: 4})
	assert.True(t, f.model.ChromeVisible())

	// Motion restarts the timer.
	f.clock.Advance(ChromeTimeout - time.Millisecond)
	f.send(tea.MouseMsg{Action: tea.MouseActionMotion})
	f.clock.Advance(ChromeTimeout - time.Millisecond)
	assert.True(t, f.model.ChromeVisible())

	f.press("f")
	assert.False(t, f.model.ChromeVisible())
	f.send(tea.MouseMsg{Action: tea.MouseActionMotion})
	assert.False(t, f.model.ChromeVisible(), "fullscreen keeps chrome hidden")
	f.press("f")
	assert.True(t, f.model.ChromeVisible())
}

func TestModel_NotificationsReplaceAndExpire(t *testing.T) {
	f := newFixture(t, "")

	f.model.Notify("first", session.NoticeTTL)
	f.clock.Advance(2 * time.Second)
	f.model.Notify("second", session.NoticeTTL)
	f.clock.Advance(1500 * time.Millisecond)
	assert.Equal(t, "second", f.model.Notice(), "the first timer was cancelled")

	f.clock.Advance(1500 * time.Millisecond)
	assert.Empty(t, f.model.Notice())

	f.model.Notify("boom", session.ErrorTTL)
	f.clock.Advance(14 * time.Second)
	assert.Equal(t, "boom", f.model.Notice())
	f.clock.Advance(time.Second)
	assert.Empty(t, f.model.Notice())
}

func TestModel_DocumentPrompt(t *testing.T) {
	f := newFixture(t, "")
	f.press("d", "ctrl+u", "n", "e", "w", "q", "enter")

	assert.Equal(t, "newq", f.ctrl.DocumentID())
	assert.Equal(t, "newq", f.model.Prefs().DocumentID)
	assert.Equal(t, "newq", f.saved[len(f.saved)-1].DocumentID)
	assert.False(t, f.model.quitting, "q typed into the prompt does not quit")
}

func TestModel_DocumentPromptCancel(t *testing.T) {
	f := newFixture(t, "")
	f.press("d", "x", "esc")
	assert.Equal(t, "doc", f.ctrl.DocumentID())
	assert.Empty(t, f.saved)
}

func TestModel_PrefsChangedFromDisk(t *testing.T) {
	f := newFixture(t, "")
	f.send(PrefsChangedMsg{Prefs: prefs.Prefs{NumRows: 4, NumCols: 1, TypingSpeed: 5, DocumentID: "other", Theme: "Kanagawa"}})

	assert.Equal(t, 4, f.grid.Rows())
	assert.Equal(t, 1, f.grid.Cols())
	assert.Equal(t, 5, f.grid.TypingSpeed())
	assert.Equal(t, "other", f.ctrl.DocumentID())
	assert.Equal(t, "Kanagawa", f.model.theme.Name)
	assert.Empty(t, f.saved, "external changes are not written back")
}

func TestModel_ThemeCycle(t *testing.T) {
	f := newFixture(t, "")
	f.press("T")
	assert.Equal(t, NextTheme("Slate"), f.model.theme.Name)
	assert.Equal(t, f.model.theme.Name, f.saved[len(f.saved)-1].Theme)
}

func TestModel_HelpOverlay(t *testing.T) {
	f := newFixture(t, "")
	f.press("?")
	assert.Contains(t, f.model.View(), "Keyboard Shortcuts")
	f.press("esc")
	assert.NotContains(t, f.model.View(), "Keyboard Shortcuts")
}

func TestModel_LogOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "griddy.log")
	line := `{"level":"info","ts":"2025-01-02T03:04:05.000Z","logger":"session","msg":"spreadsheet loaded","queries":3}`
	require.NoError(t, os.WriteFile(path, []byte(line+"\n"), 0o644))

	f := newFixture(t, path)
	f.press("L")
	f.clock.Flush()
	assert.Contains(t, f.model.View(), "spreadsheet loaded")

	require.NoError(t, os.WriteFile(path, []byte(line+"\n"+`{"level":"warn","msg":"second entry"}`+"\n"), 0o644))
	f.clock.Advance(LogRefresh)
	assert.Contains(t, f.model.View(), "second entry")

	f.press("esc")
	assert.Zero(t, f.model.logTimer)
	assert.NotContains(t, f.model.View(), "second entry")
}

func TestModel_ViewFillsScreen(t *testing.T) {
	f := newFixture(t, "")
	f.clock.Advance(time.Second)
	lines := strings.Split(f.model.View(), "\n")
	assert.Len(t, lines, 20)
}

func TestModel_Quit(t *testing.T) {
	f := newFixture(t, "")
	_, cmd := f.model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.False(t, f.grid.Running())
	assert.Empty(t, f.model.View())
}
