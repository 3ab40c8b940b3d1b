package measure

import (
	"testing"

	"github.com/atomicstack/tmux-layout-control/internal/simple"
	"github.com/atomicstack/tmux-layout-control/internal/view"
)

type measuredTree = view.Tree[Measured[simple.Layout], Measured[simple.Pane]]

func sizeOf(t *testing.T, tree measuredTree, id string) int {
	t.Helper()
	size, ok := find(tree, id)
	if !ok {
		t.Fatalf("view %q missing from measured tree", id)
	}
	return size
}

func find(tree measuredTree, id string) (int, bool) {
	type hit struct {
		size int
		ok   bool
	}
	h := view.Match(tree,
		func(n view.LayoutNode[Measured[simple.Layout], Measured[simple.Pane]]) hit {
			if n.Data.View.ID.String() == id {
				return hit{n.Data.Size, true}
			}
			for _, c := range n.Children {
				if s, ok := find(c, id); ok {
					return hit{s, true}
				}
			}
			return hit{}
		},
		func(n view.PaneNode[Measured[simple.Layout], Measured[simple.Pane]]) hit {
			if n.Data.View.ID.String() == id {
				return hit{n.Data.Size, true}
			}
			return hit{}
		},
		func(view.ForeignNode[Measured[simple.Layout], Measured[simple.Pane]]) hit { return hit{} },
	)
	return h.size, h.ok
}

func TestTreeMinimizedLayout(t *testing.T) {
	sub := simple.VLayout("sub")
	sub.State.Minimized = true
	tree := simple.Node(simple.HLayout("main"),
		simple.Leaf(simple.NewPane("one", true)),
		simple.Node(sub,
			simple.Leaf(simple.NewPane("two", true)),
			simple.Leaf(simple.NewPane("three", true)),
		),
	)
	m := Tree(tree, 80, 24)
	if got := sizeOf(t, m, "main"); got != 80 {
		t.Fatalf("horizontal root should span the width, got %d", got)
	}
	if got := sizeOf(t, m, "sub"); got != 2 {
		t.Fatalf("minimized layout should be 2 cells, got %d", got)
	}
	if got := sizeOf(t, m, "one"); got != 77 {
		t.Fatalf("expected one to take the rest, got %d", got)
	}
	if two, three := sizeOf(t, m, "two"), sizeOf(t, m, "three"); two != 11 || three != 11 {
		t.Fatalf("expected nested panes to split the height, got %d and %d", two, three)
	}
}

func TestTreeDropsClosedChildren(t *testing.T) {
	tree := simple.Node(simple.VLayout("main"),
		simple.Leaf(simple.NewPane("a", true)),
		simple.Leaf(simple.NewPane("b", false)),
	)
	m := Tree(tree, 80, 24)
	if _, ok := find(m, "b"); ok {
		t.Fatal("closed pane should not be measured")
	}
	if got := sizeOf(t, m, "a"); got != 24 {
		t.Fatalf("only open pane should take the full height, got %d", got)
	}
}

func TestSizesFractions(t *testing.T) {
	fixed := simple.NewPane("a", true)
	fixed.Geom.Fixed = view.Of(0.25)
	rest := simple.NewPane("b", true)
	got := Sizes([]view.Measurable{fixed, rest}, 81)
	if len(got) != 2 || got[0] != 20 || got[1] != 60 {
		t.Fatalf("expected [20 60], got %v", got)
	}
}

func TestSizesMinimizedOverride(t *testing.T) {
	small := simple.NewPane("a", true)
	small.State.Minimized = true
	small.Geom.MinimizedSize = view.Of(5)
	got := Sizes([]view.Measurable{small, simple.NewPane("b", true)}, 41)
	if got[0] != 5 || got[1] != 35 {
		t.Fatalf("expected [5 35], got %v", got)
	}
}
