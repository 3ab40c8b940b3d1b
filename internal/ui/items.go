package ui

import (
	"github.com/atomicstack/tmux-layout-control/internal/simple"
	uistate "github.com/atomicstack/tmux-layout-control/internal/ui/state"
	"github.com/atomicstack/tmux-layout-control/internal/view"
)

// paneItems lists the panes of tree in order. Path joins the identities of
// the enclosing layouts with the pane's own.
func paneItems(tree simple.Tree) []uistate.Item {
	var items []uistate.Item
	var walk func(t simple.Tree, path string, depth int)
	walk = func(t simple.Tree, path string, depth int) {
		view.Match(t,
			func(n view.LayoutNode[simple.Layout, simple.Pane]) struct{} {
				p := joinPath(path, n.Data.ID.String())
				for _, c := range n.Children {
					walk(c, p, depth+1)
				}
				return struct{}{}
			},
			func(n view.PaneNode[simple.Layout, simple.Pane]) struct{} {
				label := n.Data.ID.String()
				items = append(items, uistate.Item{
					Ident:  n.Data.ID,
					Label:  label,
					Path:   joinPath(path, label),
					Depth:  depth,
					Open:   n.Data.IsOpen,
					Pinned: n.Data.Pin,
				})
				return struct{}{}
			},
			func(view.ForeignNode[simple.Layout, simple.Pane]) struct{} { return struct{}{} },
		)
	}
	walk(tree, "", 0)
	return items
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "/" + name
}

func openCount(tree simple.Tree) int {
	n := 0
	for _, p := range view.Panes(tree) {
		if p.IsOpen {
			n++
		}
	}
	return n
}
