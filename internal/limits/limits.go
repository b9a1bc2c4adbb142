// Package limits holds the bounds on the user-adjustable grid settings.
// It has no dependencies so that prefs can validate without pulling in the
// grid and its spreadsheet types.
package limits

const (
	MinDimension   = 1
	MaxDimension   = 10
	MinTypingSpeed = 1
	MaxTypingSpeed = 20
)

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
