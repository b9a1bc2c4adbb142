// Package grid runs the animated grid of query cells.
//
// A Grid owns a rows×cols array of cells. Each cell independently draws a
// query from the grid's shared source, plays a short transition, types the
// query one character per tick and, once finished, is replaced in its slot
// by a brand new cell. All timing goes through a sched.Scheduler and all
// randomness through a seedable source, so the whole animation can be driven
// step by step in tests.
package grid

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/five82/griddy/internal/limits"
	"github.com/five82/griddy/internal/query"
	"github.com/five82/griddy/internal/sched"
)

// Bounds on the user-adjustable settings.
const (
	MinDimension   = limits.MinDimension
	MaxDimension   = limits.MaxDimension
	MinTypingSpeed = limits.MinTypingSpeed
	MaxTypingSpeed = limits.MaxTypingSpeed
)

// BaseDelay is the typing delay unit. The delay before each keystroke is
// BaseDelay * speed * (1 + U[0,1)), so larger speeds type slower.
const BaseDelay = 100 * time.Millisecond

// Options configure a Grid.
type Options struct {
	Rows        int
	Cols        int
	TypingSpeed int
	Palette     []Color
	Source      query.Source // optional; the grid stays still until one is set
	Scheduler   sched.Scheduler
	Seed        uint64 // zero picks a random seed
	Logger      *zap.Logger
}

// Grid coordinates the cells and the services they share.
type Grid struct {
	rows    int
	cols    int
	speed   int
	palette []Color
	source  query.Source
	cells   [][]*Cell
	running bool
	nextID  uint64

	width  int
	height int
	layout Layout

	sched  sched.Scheduler
	rng    *rand.Rand
	logger *zap.Logger

	onReplace func(old, fresh *Cell)
}

// New builds a grid, lays out its cells and starts them if a source is
// already available.
func New(opts Options) *Grid {
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = sched.NewManual()
	}
	palette := append([]Color(nil), opts.Palette...)
	if len(palette) == 0 {
		palette = append(palette, DefaultPalette...)
	}

	g := &Grid{
		speed:   limits.Clamp(opts.TypingSpeed, MinTypingSpeed, MaxTypingSpeed),
		palette: palette,
		source:  opts.Source,
		sched:   scheduler,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		logger:  logger,
	}
	g.SetSize(opts.Rows, opts.Cols)
	g.StartAll()
	return g
}

// SetContainer records the measured display area and recomputes the layout
// without disturbing running cells.
func (g *Grid) SetContainer(width, height int) {
	g.width, g.height = width, height
	g.layout = computeLayout(g.width, g.height, g.rows, g.cols)
}

// SetSize recomputes the layout and rebuilds every cell. Existing cells are
// dropped as they are; use Resize to pause and resume around the change.
func (g *Grid) SetSize(rows, cols int) {
	g.rows = limits.Clamp(rows, MinDimension, MaxDimension)
	g.cols = limits.Clamp(cols, MinDimension, MaxDimension)
	g.layout = computeLayout(g.width, g.height, g.rows, g.cols)

	g.cells = make([][]*Cell, g.rows)
	for r := range g.cells {
		g.cells[r] = make([]*Cell, g.cols)
		for c := range g.cells[r] {
			g.cells[r][c] = g.newCell(r, c)
		}
	}
	g.logger.Debug("grid sized", zap.Int("rows", g.rows), zap.Int("cols", g.cols))
}

// Resize changes the dimensions, pausing the animation during the rebuild
// if it was running.
func (g *Grid) Resize(rows, cols int) {
	resume := g.running
	if resume {
		g.StopAll()
	}
	g.SetSize(rows, cols)
	if resume {
		g.StartAll()
	}
}

// StartAll starts every cell. It does nothing when already running or when
// there is no source to draw from.
func (g *Grid) StartAll() {
	if g.running || g.source == nil {
		return
	}
	for _, row := range g.cells {
		for _, cell := range row {
			cell.Start()
		}
	}
	g.running = true
}

// StopAll stops every cell.
func (g *Grid) StopAll() {
	if !g.running {
		return
	}
	for _, row := range g.cells {
		for _, cell := range row {
			cell.Stop()
		}
	}
	g.running = false
}

// Running reports whether the cells are animating.
func (g *Grid) Running() bool { return g.running }

// SetTypingSpeed changes the delay multiplier used by every cell from its
// next keystroke on.
func (g *Grid) SetTypingSpeed(speed int) {
	g.speed = limits.Clamp(speed, MinTypingSpeed, MaxTypingSpeed)
}

// TypingSpeed returns the current delay multiplier.
func (g *Grid) TypingSpeed() int { return g.speed }

// SetQuerySource swaps the source. Cells already typing keep their query;
// only later draws see the new source.
func (g *Grid) SetQuerySource(src query.Source) {
	g.source = src
}

// QuerySource returns the active source, or nil.
func (g *Grid) QuerySource() query.Source { return g.source }

// NextQuery draws from the active source.
func (g *Grid) NextQuery() string {
	if g.source == nil {
		return ""
	}
	return g.source.Next()
}

// NextColor draws a palette color uniformly at random.
func (g *Grid) NextColor() Color {
	return PickColor(g.rng, g.palette)
}

// ReplaceCell puts a new cell at (row, col) and, while the grid is running,
// starts it.
func (g *Grid) ReplaceCell(row, col int) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return
	}
	old := g.cells[row][col]
	old.Stop()
	fresh := g.newCell(row, col)
	g.cells[row][col] = fresh
	if g.onReplace != nil {
		g.onReplace(old, fresh)
	}
	if g.running {
		fresh.Start()
	}
}

// OnReplace registers a hook called each time a slot gets a new cell.
func (g *Grid) OnReplace(fn func(old, fresh *Cell)) {
	g.onReplace = fn
}

// Rows returns the row count.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the column count.
func (g *Grid) Cols() int { return g.cols }

// Cell returns the cell currently in (row, col).
func (g *Grid) Cell(row, col int) *Cell {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return nil
	}
	return g.cells[row][col]
}

// Each visits every cell in row-major order.
func (g *Grid) Each(fn func(c *Cell)) {
	for _, row := range g.cells {
		for _, cell := range row {
			fn(cell)
		}
	}
}

// Layout returns the current geometry.
func (g *Grid) Layout() Layout { return g.layout }

// Palette returns a copy of the configured colors.
func (g *Grid) Palette() []Color { return append([]Color(nil), g.palette...) }

func (g *Grid) newCell(row, col int) *Cell {
	g.nextID++
	return newCell(g, g.nextID, row, col)
}

// complete is called by a cell that has typed its whole query.
func (g *Grid) complete(c *Cell) {
	if g.Cell(c.Row, c.Col) != c {
		return
	}
	g.ReplaceCell(c.Row, c.Col)
}

func (g *Grid) typingDelay() time.Duration {
	factor := float64(g.speed) * (1 + g.rng.Float64())
	return time.Duration(float64(BaseDelay) * factor)
}

func (g *Grid) pickTransition() Transition {
	return PickTransition(g.rng, g.palette)
}
