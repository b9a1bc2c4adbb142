package grid

import (
	"time"

	"github.com/five82/griddy/internal/sched"
)

// TransitionDelay is the pause between a cell starting and its first
// typed character.
const TransitionDelay = 10 * time.Millisecond

// State is a cell's position in its animation lifecycle.
type State int

const (
	Idle State = iota
	Transitioning
	Typing
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Transitioning:
		return "transitioning"
	case Typing:
		return "typing"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Cell is one grid position typing out a single query. A cell types its
// query once; when it finishes, the grid puts a new cell in its slot.
type Cell struct {
	Row int
	Col int

	id         uint64
	grid       *Grid
	state      State
	running    bool
	epoch      uint64
	pending    sched.Handle
	text       []rune
	cursor     int
	background Color
	transition Transition
	swept      bool
}

func newCell(g *Grid, id uint64, row, col int) *Cell {
	return &Cell{
		Row:        row,
		Col:        col,
		id:         id,
		grid:       g,
		background: g.NextColor(),
	}
}

// Start draws the next query and begins the transition. It only acts on an
// idle cell and reports whether it did anything.
func (c *Cell) Start() bool {
	if c.state != Idle || c.running {
		return false
	}
	c.running = true
	c.epoch++
	c.cursor = 0
	c.text = []rune(c.grid.NextQuery())
	c.state = Transitioning

	epoch := c.epoch
	c.pending = c.grid.sched.Schedule(TransitionDelay, func() { c.beginTyping(epoch) })
	return true
}

// Stop halts the animation. Callbacks already scheduled become no-ops, so
// the displayed text does not change after Stop returns.
func (c *Cell) Stop() {
	if !c.running {
		return
	}
	c.running = false
	if c.pending != 0 {
		c.grid.sched.Cancel(c.pending)
		c.pending = 0
	}
	c.state = Idle
}

func (c *Cell) live(epoch uint64) bool {
	return c.running && c.epoch == epoch
}

func (c *Cell) beginTyping(epoch uint64) {
	if !c.live(epoch) {
		return
	}
	c.pending = 0
	c.state = Typing
	c.transition = c.grid.pickTransition()
	c.swept = true
	c.tick(epoch)
}

func (c *Cell) tick(epoch uint64) {
	if !c.live(epoch) {
		return
	}
	c.pending = 0
	c.cursor++
	if c.cursor > len(c.text) {
		c.running = false
		c.state = Completed
		c.grid.complete(c)
		return
	}
	c.pending = c.grid.sched.Schedule(c.grid.typingDelay(), func() { c.tick(epoch) })
}

// ID uniquely identifies the cell within its grid.
func (c *Cell) ID() uint64 { return c.id }

// State returns the lifecycle state.
func (c *Cell) State() State { return c.state }

// Running reports whether the cell is animating.
func (c *Cell) Running() bool { return c.running }

// Query returns the full string the cell is typing.
func (c *Cell) Query() string { return string(c.text) }

// Cursor returns the number of typing ticks taken so far.
func (c *Cell) Cursor() int { return c.cursor }

// Displayed returns the portion of the query revealed so far.
func (c *Cell) Displayed() string {
	n := min(c.cursor, len(c.text))
	return string(c.text[:n])
}

// Background returns the color fixed at construction.
func (c *Cell) Background() Color { return c.background }

// Transition returns the sweep effect and whether one has been chosen yet.
func (c *Cell) Transition() (Transition, bool) {
	return c.transition, c.swept
}

// Progress is the share of the query revealed, in [0, 1].
func (c *Cell) Progress() float64 {
	if c.state == Completed {
		return 1
	}
	if len(c.text) == 0 {
		if c.state == Typing {
			return 1
		}
		return 0
	}
	return float64(min(c.cursor, len(c.text))) / float64(len(c.text))
}
