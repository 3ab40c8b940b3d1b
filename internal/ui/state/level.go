package state

// Level holds the pane list with its filter, cursor and viewport.
type Level struct {
	Items          []Item
	Full           []Item
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewLevel constructs a Level over items.
func NewLevel(items []Item) *Level {
	l := &Level{LastCursor: -1}
	l.UpdateItems(items)
	return l
}

// IndexOf returns the position of the item labelled label among the visible
// items, or -1.
func (l *Level) IndexOf(label string) int {
	for i, item := range l.Items {
		if item.Label == label {
			return i
		}
	}
	return -1
}

// Current returns the item under the cursor.
func (l *Level) Current() (Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Item{}, false
	}
	return l.Items[l.Cursor], true
}

// UpdateItems replaces the items, keeping the cursor on the same pane when
// it is still visible.
func (l *Level) UpdateItems(items []Item) {
	current, ok := l.Current()
	l.Full = CloneItems(items)
	l.applyFilter()
	if ok {
		if idx := l.IndexOf(current.Label); idx >= 0 {
			l.Cursor = idx
		}
	}
	if l.ViewportOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
	}
}
