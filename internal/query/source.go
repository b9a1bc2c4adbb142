// Package query provides the cyclic sources of strings shown in grid cells.
package query

// Source yields display strings forever, wrapping around at the end.
type Source interface {
	Next() string
	Len() int
}

// List is a Source over a fixed sequence. The sequence is never modified
// after construction; to change what is shown, install a new List.
type List struct {
	items []string
	index int
}

var _ Source = (*List)(nil)

// NewList copies items into a new List.
func NewList(items []string) *List {
	dup := make([]string, len(items))
	copy(dup, items)
	return &List{items: dup}
}

// Next returns the string at the cursor and advances it. An empty List
// returns "".
func (l *List) Next() string {
	if len(l.items) == 0 {
		return ""
	}
	item := l.items[l.index]
	l.index = (l.index + 1) % len(l.items)
	return item
}

// Len returns the number of distinct positions in the cycle.
func (l *List) Len() int {
	return len(l.items)
}

// Items returns a copy of the underlying sequence.
func (l *List) Items() []string {
	dup := make([]string, len(l.items))
	copy(dup, l.items)
	return dup
}

var offlineQueries = []string{
	"There is no internet connection",
	"Try checking the network connection",
	"Try reconnecting to Wi-Fi",
	":-( :-(",
}

// Offline returns the source shown while the network is unavailable.
func Offline() *List {
	return NewList(offlineQueries)
}

var sampleQueries = []string{
	"how to tie a tie",
	"weather tomorrow",
	"what time is it in tokyo",
	"easy banana bread recipe",
	"how far away is the moon",
	"best hiking trails near me",
	"why is the sky blue",
	"how to say hello in japanese",
	"train times to london",
	"how many ounces in a cup",
	"is it going to rain today",
	"funny cat videos",
}

// Sample returns the built-in static list used when no spreadsheet is
// available.
func Sample() *List {
	return NewList(sampleQueries)
}
