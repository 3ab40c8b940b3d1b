package state

import "github.com/atomicstack/tmux-layout-control/internal/ident"

// Item is one pane row of the toggler.
type Item struct {
	Ident  ident.Ident
	Label  string
	Path   string
	Depth  int
	Open   bool
	Pinned bool
}

// CloneItems produces a shallow copy of items.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
