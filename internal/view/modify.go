package view

import (
	"errors"
	"fmt"

	"github.com/atomicstack/tmux-layout-control/internal/ident"
)

// ErrNoSuchPane is returned when no pane carries the requested identity.
var ErrNoSuchPane = errors.New("no pane with matching identity")

// MatchResult describes where a child subtree contained the modified pane.
type MatchResult int

const (
	NotFound MatchResult = iota
	// Found means the pane is inside a nested layout.
	Found
	// FoundHere means the child itself is the pane.
	FoundHere
)

func (r MatchResult) String() string {
	switch r {
	case Found:
		return "found"
	case FoundHere:
		return "found-here"
	default:
		return "not-found"
	}
}

// LayoutHook lets a layout that contains the modified pane rewrite itself.
// results is aligned with layout.Children.
type LayoutHook[L, P any] func(layout LayoutNode[L, P], results []MatchResult) LayoutNode[L, P]

type modifyStep[L, P any] struct {
	tree   Tree[L, P]
	result MatchResult
}

// ModifyPane applies mutate to the pane with identity id and then gives every
// enclosing layout, innermost first, the chance to react through hook.
func ModifyPane[L any, P Identified](t Tree[L, P], id ident.Ident, mutate func(P) P, hook LayoutHook[L, P]) (Tree[L, P], error) {
	var step func(Tree[L, P]) modifyStep[L, P]
	step = func(t Tree[L, P]) modifyStep[L, P] {
		return Match(t,
			func(n LayoutNode[L, P]) modifyStep[L, P] {
				children := make([]Tree[L, P], len(n.Children))
				results := make([]MatchResult, len(n.Children))
				found := false
				for i, c := range n.Children {
					r := step(c)
					children[i] = r.tree
					results[i] = r.result
					found = found || r.result != NotFound
				}
				updated := LayoutNode[L, P]{Data: n.Data, Children: children}
				if !found {
					return modifyStep[L, P]{tree: updated, result: NotFound}
				}
				if hook != nil {
					updated = hook(updated, results)
				}
				return modifyStep[L, P]{tree: updated, result: Found}
			},
			func(n PaneNode[L, P]) modifyStep[L, P] {
				if n.Data.Ident() != id {
					return modifyStep[L, P]{tree: n, result: NotFound}
				}
				return modifyStep[L, P]{tree: PaneNode[L, P]{Data: mutate(n.Data)}, result: FoundHere}
			},
			func(n ForeignNode[L, P]) modifyStep[L, P] {
				return modifyStep[L, P]{tree: n, result: NotFound}
			},
		)
	}
	r := step(t)
	if r.result == NotFound {
		return t, fmt.Errorf("pane %s: %w", id, ErrNoSuchPane)
	}
	return r.tree, nil
}

// OpenPinned is a LayoutHook that opens the pinned panes of a layout once one
// of its direct child panes was opened.
func OpenPinned[L any, P PaneView[P]](layout LayoutNode[L, P], results []MatchResult) LayoutNode[L, P] {
	opened := false
	for i, r := range results {
		if r != FoundHere {
			continue
		}
		if p, ok := layout.Children[i].(PaneNode[L, P]); ok && p.Data.Open() {
			opened = true
		}
	}
	if !opened {
		return layout
	}
	children := make([]Tree[L, P], len(layout.Children))
	for i, c := range layout.Children {
		children[i] = c
		if p, ok := c.(PaneNode[L, P]); ok && p.Data.Pinned() && !p.Data.Open() {
			children[i] = PaneNode[L, P]{Data: p.Data.WithOpen(true)}
		}
	}
	return LayoutNode[L, P]{Data: layout.Data, Children: children}
}

// OpenPane opens the pane with identity id along with its pinned siblings.
func OpenPane[L any, P PaneView[P]](t Tree[L, P], id ident.Ident) (Tree[L, P], error) {
	return ModifyPane(t, id, func(p P) P { return p.WithOpen(true) }, OpenPinned[L, P])
}

// ClosePane closes the pane with identity id.
func ClosePane[L any, P PaneView[P]](t Tree[L, P], id ident.Ident) (Tree[L, P], error) {
	return ModifyPane(t, id, func(p P) P { return p.WithOpen(false) }, nil)
}

// TogglePane flips the pane's open state. Opening also opens pinned siblings.
func TogglePane[L any, P PaneView[P]](t Tree[L, P], id ident.Ident) (Tree[L, P], error) {
	return ModifyPane(t, id, func(p P) P { return p.WithOpen(!p.Open()) }, OpenPinned[L, P])
}
