package view

import "github.com/atomicstack/tmux-layout-control/internal/ident"

// Find returns the first pane payload, depth first in child order, that
// satisfies pred.
func Find[L, P any](t Tree[L, P], pred func(P) bool) (P, bool) {
	r := Match(t,
		func(n LayoutNode[L, P]) found[P] {
			for _, c := range n.Children {
				if p, ok := Find(c, pred); ok {
					return found[P]{p, true}
				}
			}
			return found[P]{}
		},
		func(n PaneNode[L, P]) found[P] {
			if pred(n.Data) {
				return found[P]{n.Data, true}
			}
			return found[P]{}
		},
		func(ForeignNode[L, P]) found[P] { return found[P]{} },
	)
	return r.pane, r.ok
}

type found[P any] struct {
	pane P
	ok   bool
}

// FindIdent returns the pane with the given identity.
func FindIdent[L any, P Identified](t Tree[L, P], id ident.Ident) (P, bool) {
	return Find(t, func(p P) bool { return p.Ident() == id })
}

// Panes collects every pane payload in child order.
func Panes[L, P any](t Tree[L, P]) []P {
	var out []P
	var walk func(Tree[L, P])
	walk = func(t Tree[L, P]) {
		Match(t,
			func(n LayoutNode[L, P]) struct{} {
				for _, c := range n.Children {
					walk(c)
				}
				return struct{}{}
			},
			func(n PaneNode[L, P]) struct{} {
				out = append(out, n.Data)
				return struct{}{}
			},
			func(ForeignNode[L, P]) struct{} { return struct{}{} },
		)
	}
	walk(t)
	return out
}

// FirstPane returns the leftmost pane.
func FirstPane[L, P any](t Tree[L, P]) (P, bool) {
	return Find(t, func(P) bool { return true })
}

// FirstOpenPane returns the leftmost open pane.
func FirstOpenPane[L any, P PaneView[P]](t Tree[L, P]) (P, bool) {
	return Find(t, func(p P) bool { return p.Open() })
}

// IsOpen reports whether a node occupies space: an open pane, or a layout
// containing one. Foreign subtrees are never open.
func IsOpen[L any, P PaneView[P]](t Tree[L, P]) bool {
	return Match(t,
		func(n LayoutNode[L, P]) bool {
			for _, c := range n.Children {
				if IsOpen(c) {
					return true
				}
			}
			return false
		},
		func(n PaneNode[L, P]) bool { return n.Data.Open() },
		func(ForeignNode[L, P]) bool { return false },
	)
}

// OpenChildren filters the direct children of a layout down to open ones.
func OpenChildren[L any, P PaneView[P]](n LayoutNode[L, P]) []Tree[L, P] {
	var out []Tree[L, P]
	for _, c := range n.Children {
		if IsOpen(c) {
			out = append(out, c)
		}
	}
	return out
}

// OpenPanes returns the open panes among the direct children of a layout.
func OpenPanes[L any, P PaneView[P]](n LayoutNode[L, P]) []PaneNode[L, P] {
	var out []PaneNode[L, P]
	for _, c := range n.Children {
		if p, ok := c.(PaneNode[L, P]); ok && p.Data.Open() {
			out = append(out, p)
		}
	}
	return out
}

// MapPanes returns a copy of t where every pane payload satisfying pred is
// replaced by f(payload). Child order is preserved.
func MapPanes[L, P any](t Tree[L, P], pred func(P) bool, f func(P) P) Tree[L, P] {
	return Match(t,
		func(n LayoutNode[L, P]) Tree[L, P] {
			children := make([]Tree[L, P], len(n.Children))
			for i, c := range n.Children {
				children[i] = MapPanes(c, pred, f)
			}
			return LayoutNode[L, P]{Data: n.Data, Children: children}
		},
		func(n PaneNode[L, P]) Tree[L, P] {
			if pred(n.Data) {
				return PaneNode[L, P]{Data: f(n.Data)}
			}
			return n
		},
		func(n ForeignNode[L, P]) Tree[L, P] { return n },
	)
}

// MapLayouts is MapPanes for layout payloads. Children are mapped before their
// parent is tested, so pred sees the updated subtree.
func MapLayouts[L, P any](t Tree[L, P], pred func(LayoutNode[L, P]) bool, f func(L) L) Tree[L, P] {
	return Match(t,
		func(n LayoutNode[L, P]) Tree[L, P] {
			children := make([]Tree[L, P], len(n.Children))
			for i, c := range n.Children {
				children[i] = MapLayouts(c, pred, f)
			}
			updated := LayoutNode[L, P]{Data: n.Data, Children: children}
			if pred(updated) {
				updated.Data = f(updated.Data)
			}
			return updated
		},
		func(n PaneNode[L, P]) Tree[L, P] { return n },
		func(n ForeignNode[L, P]) Tree[L, P] { return n },
	)
}
