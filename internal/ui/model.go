package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/griddy/internal/grid"
	"github.com/five82/griddy/internal/prefs"
	"github.com/five82/griddy/internal/query"
	"github.com/five82/griddy/internal/sched"
	"github.com/five82/griddy/internal/session"
)

// Timing of the chrome and cursor.
const (
	ChromeTimeout = 2500 * time.Millisecond
	BlinkInterval = 530 * time.Millisecond
	LogRefresh    = 2 * time.Second
	logLines      = 500
)

// Driver is the scheduler the model runs on. *sched.Loop is the production
// driver; Handle and Cmd let it ride on Bubble Tea messages.
type Driver interface {
	sched.Scheduler
	Handle(msg tea.Msg) bool
	Cmd() tea.Cmd
}

// PrefsChangedMsg carries preferences edited outside the running UI.
type PrefsChangedMsg struct {
	Prefs prefs.Prefs
}

type overlay int

const (
	overlayNone overlay = iota
	overlayHelp
	overlayDocument
	overlayLogs
)

// Options configure a Model.
type Options struct {
	Grid      *grid.Grid
	Driver    Driver
	Prefs     prefs.Prefs
	SavePrefs func(prefs.Prefs) error
	LogPath   string
	Logger    *zap.Logger
}

// Model is the Bubble Tea model for griddy. It is used by pointer: timer
// callbacks scheduled on the driver close over it.
type Model struct {
	grid    *grid.Grid
	driver  Driver
	session *session.Controller
	logger  *zap.Logger

	prefs     prefs.Prefs
	savePrefs func(prefs.Prefs) error
	saving    bool // a write is in flight
	dirty     bool // prefs changed since the last write started
	theme     Theme
	keys      keyMap

	width  int
	height int

	paused     bool
	fullscreen bool
	chrome     bool
	chromeHide sched.Handle

	cursorOn bool
	blink    sched.Handle

	notice     string
	noticeErr  bool
	noticeHide sched.Handle

	overlay  overlay
	help     help.Model
	docInput textinput.Model
	logView  viewport.Model
	logPath  string
	logTimer sched.Handle

	spinner  spinner.Model
	spinning bool

	quitting bool
}

// New builds the model. Attach the session controller before running.
func New(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	save := opts.SavePrefs
	if save == nil {
		save = func(prefs.Prefs) error { return nil }
	}
	p := opts.Prefs.Normalize()
	theme := GetTheme(p.Theme)

	input := textinput.New()
	input.Placeholder = "Spreadsheet document ID"
	input.CharLimit = 200
	input.Width = 48

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := &Model{
		grid:      opts.Grid,
		driver:    opts.Driver,
		logger:    logger.Named("ui"),
		prefs:     p,
		savePrefs: save,
		theme:     theme,
		keys:      DefaultKeyMap(),
		chrome:    true,
		cursorOn:  true,
		help:      help.New(),
		docInput:  input,
		logView:   viewport.New(0, 0),
		logPath:   opts.LogPath,
		spinner:   spin,
	}
	m.applyTheme()
	return m
}

// AttachSession connects the controller that feeds the grid.
func (m *Model) AttachSession(c *session.Controller) {
	m.session = c
}

// Target returns the grid adapter the session controller drives. Starting
// is suppressed while the user has paused the grid.
func (m *Model) Target() session.Target {
	return gridTarget{m}
}

type gridTarget struct{ m *Model }

func (t gridTarget) SetQuerySource(src query.Source) { t.m.grid.SetQuerySource(src) }

func (t gridTarget) StartAll() {
	if !t.m.paused {
		t.m.grid.StartAll()
	}
}

// Notify shows a snackbar message for ttl. A newer message replaces the
// current one and its timer.
func (m *Model) Notify(text string, ttl time.Duration) {
	if m.noticeHide != 0 {
		m.driver.Cancel(m.noticeHide)
	}
	m.notice = text
	m.noticeErr = ttl >= session.ErrorTTL
	m.noticeHide = m.driver.Schedule(ttl, func() {
		m.noticeHide = 0
		m.notice = ""
	})
}

// Init starts the session and the ambient timers.
func (m *Model) Init() tea.Cmd {
	m.showChrome()
	m.scheduleBlink()
	if m.session != nil {
		m.session.Start()
	}
	return tea.Batch(m.spinnerCmd(), m.driver.Cmd())
}

// Update handles one message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.grid.SetContainer(m.width, m.height)
		m.resizeOverlays()

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion || msg.Action == tea.MouseActionPress {
			m.showChrome()
		}

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case PrefsChangedMsg:
		// While our own writes are pending the file is about to be replaced.
		if !m.saving && !m.dirty {
			m.applyPrefs(msg.Prefs)
		}

	case spinner.TickMsg:
		if m.loading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		} else {
			m.spinning = false
		}

	default:
		if m.driver.Handle(msg) {
			break
		}
		if m.overlay == overlayDocument {
			var cmd tea.Cmd
			m.docInput, cmd = m.docInput.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if m.quitting {
		return m, tea.Quit
	}
	cmds = append(cmds, m.spinnerCmd(), m.driver.Cmd())
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		m.quit()
		return nil
	}
	switch m.overlay {
	case overlayDocument:
		return m.handleDocumentKey(msg)
	case overlayLogs:
		return m.handleLogsKey(msg)
	case overlayHelp:
		if key.Matches(msg, m.keys.Escape, m.keys.Help) {
			m.overlay = overlayNone
			return nil
		}
		if key.Matches(msg, m.keys.Quit) {
			m.quit()
		}
		return nil
	}

	m.showChrome()
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quit()
	case key.Matches(msg, m.keys.RowsDown):
		m.setDimensions(m.prefs.NumRows-1, m.prefs.NumCols)
	case key.Matches(msg, m.keys.RowsUp):
		m.setDimensions(m.prefs.NumRows+1, m.prefs.NumCols)
	case key.Matches(msg, m.keys.ColsDown):
		m.setDimensions(m.prefs.NumRows, m.prefs.NumCols-1)
	case key.Matches(msg, m.keys.ColsUp):
		m.setDimensions(m.prefs.NumRows, m.prefs.NumCols+1)
	case key.Matches(msg, m.keys.SpeedDown):
		m.setSpeed(m.prefs.TypingSpeed - 1)
	case key.Matches(msg, m.keys.SpeedUp):
		m.setSpeed(m.prefs.TypingSpeed + 1)
	case key.Matches(msg, m.keys.Document):
		return m.openDocument()
	case key.Matches(msg, m.keys.Refresh):
		if m.session != nil {
			m.session.Fetch()
		}
	case key.Matches(msg, m.keys.Pause):
		m.togglePause()
	case key.Matches(msg, m.keys.Fullscreen):
		m.toggleFullscreen()
	case key.Matches(msg, m.keys.Logs):
		m.openLogs()
	case key.Matches(msg, m.keys.CycleTheme):
		p := m.prefs
		p.Theme = NextTheme(m.theme.Name)
		m.commitPrefs(p)
	case key.Matches(msg, m.keys.Help):
		m.overlay = overlayHelp
	}
	return nil
}

func (m *Model) quit() {
	m.quitting = true
	if m.session != nil {
		m.session.Close()
	}
	m.grid.StopAll()
}

func (m *Model) setDimensions(rows, cols int) {
	rows = min(max(rows, grid.MinDimension), grid.MaxDimension)
	cols = min(max(cols, grid.MinDimension), grid.MaxDimension)
	if rows == m.prefs.NumRows && cols == m.prefs.NumCols {
		return
	}
	p := m.prefs
	p.NumRows, p.NumCols = rows, cols
	m.commitPrefs(p)
}

func (m *Model) setSpeed(speed int) {
	speed = min(max(speed, grid.MinTypingSpeed), grid.MaxTypingSpeed)
	if speed == m.prefs.TypingSpeed {
		return
	}
	p := m.prefs
	p.TypingSpeed = speed
	m.commitPrefs(p)
}

// commitPrefs applies p and persists it off the loop.
func (m *Model) commitPrefs(p prefs.Prefs) {
	m.applyPrefs(p)
	m.dirty = true
	m.flushPrefs()
}

// flushPrefs writes the current prefs. At most one write is in flight;
// changes made meanwhile are written after it completes, so the file always
// ends up holding the latest settings.
func (m *Model) flushPrefs() {
	if m.saving || !m.dirty {
		return
	}
	m.saving, m.dirty = true, false
	saved := m.prefs
	save := m.savePrefs
	m.driver.Go(func() func() {
		err := save(saved)
		return func() {
			m.saving = false
			if err != nil {
				m.logger.Warn("save prefs failed", zap.Error(err))
				m.Notify("Could not save settings: "+err.Error(), session.ErrorTTL)
			}
			m.flushPrefs()
		}
	})
}

// applyPrefs brings the grid, session and theme in line with p.
func (m *Model) applyPrefs(p prefs.Prefs) {
	p = p.Normalize()
	old := m.prefs
	m.prefs = p

	if p.NumRows != old.NumRows || p.NumCols != old.NumCols {
		m.grid.Resize(p.NumRows, p.NumCols)
		m.logger.Debug("grid resized", zap.Int("rows", p.NumRows), zap.Int("cols", p.NumCols))
	}
	if p.TypingSpeed != old.TypingSpeed {
		m.grid.SetTypingSpeed(p.TypingSpeed)
	}
	if p.Theme != old.Theme {
		m.theme = GetTheme(p.Theme)
		m.applyTheme()
	}
	if p.DocumentID != old.DocumentID && m.session != nil {
		m.session.SetDocumentID(p.DocumentID)
	}
}

func (m *Model) togglePause() {
	m.paused = !m.paused
	if m.paused {
		m.grid.StopAll()
	} else {
		m.grid.StartAll()
	}
}

func (m *Model) toggleFullscreen() {
	m.fullscreen = !m.fullscreen
	if m.fullscreen {
		m.hideChrome()
	} else {
		m.showChrome()
	}
}

// showChrome reveals the header and footer and restarts the hide timer.
func (m *Model) showChrome() {
	if m.fullscreen {
		return
	}
	m.chrome = true
	if m.chromeHide != 0 {
		m.driver.Cancel(m.chromeHide)
	}
	m.chromeHide = m.driver.Schedule(ChromeTimeout, func() {
		m.chromeHide = 0
		m.chrome = false
	})
}

func (m *Model) hideChrome() {
	m.chrome = false
	if m.chromeHide != 0 {
		m.driver.Cancel(m.chromeHide)
		m.chromeHide = 0
	}
}

func (m *Model) scheduleBlink() {
	m.blink = m.driver.Schedule(BlinkInterval, func() {
		m.cursorOn = !m.cursorOn
		m.scheduleBlink()
	})
}

func (m *Model) loading() bool {
	return m.session != nil && m.session.Store().Snapshot().Loading
}

func (m *Model) spinnerCmd() tea.Cmd {
	if m.spinning || !m.loading() {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m *Model) applyTheme() {
	styles := m.theme.Styles()
	m.help.Styles.ShortKey = styles.AccentText
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.ShortSeparator = styles.FaintText
	m.help.Styles.FullKey = styles.AccentText
	m.help.Styles.FullDesc = styles.Text
	m.help.Styles.FullSeparator = styles.FaintText
	m.spinner.Style = styles.AccentText
	m.docInput.PromptStyle = styles.AccentText
	m.docInput.TextStyle = styles.Text
}

func (m *Model) resizeOverlays() {
	m.help.Width = m.width
	m.logView.Width = max(m.width-8, 10)
	m.logView.Height = max(m.height-8, 3)
}

// View renders the screen.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width <= 0 || m.height <= 0 {
		return "griddy: starting..."
	}
	switch m.overlay {
	case overlayHelp:
		return m.renderHelp()
	case overlayDocument:
		return m.renderDocument()
	case overlayLogs:
		return m.renderLogs()
	}

	lines := renderGrid(m.grid, m.cursorOn, m.theme.CellText)
	for len(lines) < m.height {
		lines = append(lines, NewBgStyle(m.theme.Background).FillLine("", m.width))
	}
	lines = lines[:m.height]

	last := m.height - 1
	if m.chrome && m.height >= 3 {
		lines[0] = m.renderHeader()
		lines[last] = m.renderFooter()
		last--
	}
	if m.notice != "" && last >= 0 {
		lines[last] = m.renderSnackbar()
	}
	return strings.Join(lines, "\n")
}

// Prefs returns the settings currently applied.
func (m *Model) Prefs() prefs.Prefs { return m.prefs }

// Paused reports whether the user paused the grid.
func (m *Model) Paused() bool { return m.paused }

// ChromeVisible reports whether the header and footer are showing.
func (m *Model) ChromeVisible() bool { return m.chrome }

// Notice returns the current snackbar text.
func (m *Model) Notice() string { return m.notice }
