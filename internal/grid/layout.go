package grid

// Layout is the on-screen geometry of a grid, in terminal cells.
type Layout struct {
	Width      int
	Height     int
	ColWidths  []int
	RowHeights []int
	// FontScale mirrors the page's font sizing rule, 20/max(rows, cols).
	// Renderers use it to pick denser or roomier text styles.
	FontScale int
}

// computeLayout splits a width×height container into rows×cols cells.
// Leftover columns and lines go to the leading cells so the grid always
// fills the container exactly.
func computeLayout(width, height, rows, cols int) Layout {
	return Layout{
		Width:      max(width, 0),
		Height:     max(height, 0),
		ColWidths:  split(width, cols),
		RowHeights: split(height, rows),
		FontScale:  20 / max(rows, cols, 1),
	}
}

func split(total, parts int) []int {
	if parts <= 0 {
		return nil
	}
	total = max(total, 0)
	base, extra := total/parts, total%parts
	sizes := make([]int, parts)
	for i := range sizes {
		sizes[i] = base
		if i < extra {
			sizes[i]++
		}
	}
	return sizes
}
