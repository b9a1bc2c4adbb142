package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/five82/griddy/internal/grid"
)

const cursorGlyph = "▌"

// glyph is one screen column's worth of text. Wide runes occupy their first
// column and leave a zero-width placeholder in the next.
type glyph struct {
	text  string
	width int
}

// cellView holds what renderCell needs from a grid cell.
type cellView struct {
	Text       string
	Typing     bool
	Background grid.Color
	Sweep      grid.Transition
	Swept      bool
	Progress   float64
}

func viewOf(c *grid.Cell) cellView {
	tr, swept := c.Transition()
	return cellView{
		Text:       c.Displayed(),
		Typing:     c.State() == grid.Typing,
		Background: c.Background(),
		Sweep:      tr,
		Swept:      swept,
		Progress:   c.Progress(),
	}
}

// renderCell draws a cell as exactly height lines of exactly width columns.
// The query is word-wrapped and centered; the sweep color fills the share of
// the box given by the typing progress, entering from the chosen side.
func renderCell(v cellView, width, height int, cursorOn, bold bool, textColor string) []string {
	if width <= 0 || height <= 0 {
		return make([]string, max(height, 0))
	}

	text := v.Text
	if v.Typing && cursorOn {
		text += cursorGlyph
	}
	rows := layoutText(text, max(width-2, 1), height)

	fill := sweepExtent(v, width, height)
	base := lipgloss.Color(string(v.Background))
	sweep := lipgloss.Color(string(v.Sweep.Color))
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(textColor)).Bold(bold)

	out := make([]string, height)
	for y := 0; y < height; y++ {
		line := rows[y]
		var b strings.Builder
		var run strings.Builder
		runBg := lipgloss.Color("")
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(style.Background(runBg).Render(run.String()))
				run.Reset()
			}
		}
		for x := 0; x < width; x++ {
			bg := base
			if fill(x, y) {
				bg = sweep
			}
			if bg != runBg {
				flush()
				runBg = bg
			}
			g := line[x]
			if g.width == 0 {
				continue
			}
			run.WriteString(g.text)
		}
		flush()
		out[y] = b.String()
	}
	return out
}

// layoutText wraps text into height rows of width glyphs each, centered both
// ways. When the text is taller than the box the last rows are kept, so the
// line being typed stays visible.
func layoutText(text string, inner, height int) [][]glyph {
	width := inner + 2
	rows := make([][]glyph, height)
	for i := range rows {
		rows[i] = blankRow(width)
	}
	if text == "" {
		return rows
	}

	wrapped := wrap.String(wordwrap.String(text, inner), inner)
	lines := strings.Split(wrapped, "\n")
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	top := (height - len(lines)) / 2
	for i, line := range lines {
		line = strings.TrimRight(line, " ")
		lineWidth := runewidth.StringWidth(line)
		x := 1 + max((inner-lineWidth)/2, 0)
		row := rows[top+i]
		for _, r := range line {
			rw := runewidth.RuneWidth(r)
			if rw == 0 {
				// combining mark: attach to the previous glyph, skipping
				// the placeholders behind a wide one
				for k := x - 1; k >= 0; k-- {
					if row[k].width > 0 {
						row[k].text += string(r)
						break
					}
				}
				continue
			}
			if x+rw > width-1 {
				break
			}
			row[x] = glyph{text: string(r), width: rw}
			for k := 1; k < rw; k++ {
				row[x+k] = glyph{}
			}
			x += rw
		}
	}
	return rows
}

func blankRow(width int) []glyph {
	row := make([]glyph, width)
	for i := range row {
		row[i] = glyph{text: " ", width: 1}
	}
	return row
}

// sweepExtent returns a predicate reporting whether column x of row y lies
// inside the swept region.
func sweepExtent(v cellView, width, height int) func(x, y int) bool {
	if !v.Swept {
		return func(int, int) bool { return false }
	}
	p := math.Min(math.Max(v.Progress, 0), 1)
	cols := int(math.Round(p * float64(width)))
	rows := int(math.Round(p * float64(height)))
	switch v.Sweep.Direction {
	case grid.FromLeft:
		return func(x, _ int) bool { return x < cols }
	case grid.FromRight:
		return func(x, _ int) bool { return x >= width-cols }
	case grid.FromTop:
		return func(_, y int) bool { return y < rows }
	default:
		return func(_, y int) bool { return y >= height-rows }
	}
}

// renderGrid draws every cell and joins them into full-width lines.
func renderGrid(g *grid.Grid, cursorOn bool, textColor string) []string {
	layout := g.Layout()
	bold := layout.FontScale >= 4
	var lines []string
	for r := 0; r < g.Rows(); r++ {
		h := 0
		if r < len(layout.RowHeights) {
			h = layout.RowHeights[r]
		}
		if h == 0 {
			continue
		}
		blocks := make([][]string, g.Cols())
		for c := 0; c < g.Cols(); c++ {
			w := 0
			if c < len(layout.ColWidths) {
				w = layout.ColWidths[c]
			}
			cell := g.Cell(r, c)
			if cell == nil || w == 0 {
				blocks[c] = make([]string, h)
				continue
			}
			blocks[c] = renderCell(viewOf(cell), w, h, cursorOn, bold, textColor)
		}
		for y := 0; y < h; y++ {
			var b strings.Builder
			for c := range blocks {
				b.WriteString(blocks[c][y])
			}
			lines = append(lines, b.String())
		}
	}
	return lines
}
