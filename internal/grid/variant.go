package grid

import "math/rand/v2"

// Color is a hex color such as "#4285F4".
type Color string

// DefaultPalette is used when no colors are configured.
var DefaultPalette = []Color{"#4285F4", "#0F9D58", "#F4B400", "#DB4437"}

// Direction is the side a transition sweeps in from.
type Direction int

const (
	FromTop Direction = iota
	FromBottom
	FromLeft
	FromRight
)

var directions = [...]Direction{FromTop, FromBottom, FromLeft, FromRight}

func (d Direction) String() string {
	switch d {
	case FromTop:
		return "top"
	case FromBottom:
		return "bottom"
	case FromLeft:
		return "left"
	case FromRight:
		return "right"
	default:
		return "unknown"
	}
}

// Vertical reports whether the sweep moves across rows.
func (d Direction) Vertical() bool {
	return d == FromTop || d == FromBottom
}

// Transition is the one-time visual effect a cell plays when it starts
// typing: a fill of Color sweeping in from Direction.
type Transition struct {
	Direction Direction
	Color     Color
}

// PickColor draws a color uniformly from palette. An empty palette falls
// back to DefaultPalette.
func PickColor(r *rand.Rand, palette []Color) Color {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	return palette[r.IntN(len(palette))]
}

// PickTransition draws a direction and a color independently and uniformly.
func PickTransition(r *rand.Rand, palette []Color) Transition {
	return Transition{
		Direction: directions[r.IntN(len(directions))],
		Color:     PickColor(r, palette),
	}
}
