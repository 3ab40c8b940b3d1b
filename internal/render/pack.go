package render

import (
	"fmt"

	"github.com/atomicstack/tmux-layout-control/internal/ident"
	"github.com/atomicstack/tmux-layout-control/internal/logging/events"
	"github.com/atomicstack/tmux-layout-control/internal/measure"
	"github.com/atomicstack/tmux-layout-control/internal/state"
	"github.com/atomicstack/tmux-layout-control/internal/tmux"
	"github.com/atomicstack/tmux-layout-control/internal/view"
)

type measuredTree[L, P any] = view.Tree[measure.Measured[L], measure.Measured[P]]

type lookup struct {
	id ident.Ident
	ok bool
}

// packer moves and resizes panes against one snapshot of the server's panes.
type packer[L view.LayoutView, P view.PaneView[P]] struct {
	r       *Renderer[L, P]
	live    map[tmux.PaneID]bool
	changed bool
}

func (r *Renderer[L, P]) newPacker(changed bool) (*packer[L, P], error) {
	panes, err := r.Client.AllPanes()
	if err != nil {
		return nil, err
	}
	live := make(map[tmux.PaneID]bool, len(panes))
	for _, p := range panes {
		live[p.ID] = true
	}
	return &packer[L, P]{r: r, live: live, changed: changed}, nil
}

// PackTree positions the principal pane of every child of a layout after
// the previous one, recurses into sub-layouts, then resizes the children to
// their measured size. outer is the reference used when a layout has no
// native pane of its own.
func (p *packer[L, P]) PackTree(t measuredTree[L, P], outer ident.Ident) error {
	return view.Match(t,
		func(n view.LayoutNode[measure.Measured[L], measure.Measured[P]]) error {
			return p.packLayout(n, outer)
		},
		func(view.PaneNode[measure.Measured[L], measure.Measured[P]]) error { return nil },
		func(view.ForeignNode[measure.Measured[L], measure.Measured[P]]) error { return nil },
	)
}

func (p *packer[L, P]) packLayout(n view.LayoutNode[measure.Measured[L], measure.Measured[P]], outer ident.Ident) error {
	vertical := n.Data.View.Vertical()
	reference, ok := p.reference(n)
	if !ok {
		reference = outer
	}
	prev := reference
	for _, c := range n.Children {
		principal, ok := p.principal(c)
		if !ok {
			continue
		}
		if principal != prev {
			if err := p.move(principal, prev, vertical); err != nil {
				return err
			}
		}
		prev = principal
	}
	for _, c := range n.Children {
		if err := p.PackTree(c, reference); err != nil {
			return err
		}
	}
	var resizes []tmux.Command
	for _, c := range n.Children {
		principal, ok := p.principal(c)
		if !ok {
			continue
		}
		id, err := p.nativeID(principal)
		if err != nil {
			return err
		}
		size := sizeOf(c)
		resizes = append(resizes, tmux.ResizeCommand(id, vertical, size))
		events.Render.Resize(id.String(), vertical, size)
	}
	if len(resizes) == 0 {
		return nil
	}
	if err := p.r.Client.WriteAll(resizes...); err != nil {
		return fmt.Errorf("layout %s: %w", n.Data.View.Ident(), err)
	}
	return nil
}

// reference is the first pane inside the layout that is open natively.
func (p *packer[L, P]) reference(n view.LayoutNode[measure.Measured[L], measure.Measured[P]]) (ident.Ident, bool) {
	for _, c := range n.Children {
		if id, ok := p.principal(c); ok {
			return id, true
		}
	}
	return ident.Ident{}, false
}

// principal is the pane that stands for a child while its parent is packed:
// the pane itself, or the reference of a sub-layout.
func (p *packer[L, P]) principal(t measuredTree[L, P]) (ident.Ident, bool) {
	res := view.Match(t,
		func(n view.LayoutNode[measure.Measured[L], measure.Measured[P]]) lookup {
			id, ok := p.reference(n)
			return lookup{id, ok}
		},
		func(n view.PaneNode[measure.Measured[L], measure.Measured[P]]) lookup {
			id := n.Data.View.Ident()
			return lookup{id, p.open(id)}
		},
		func(view.ForeignNode[measure.Measured[L], measure.Measured[P]]) lookup { return lookup{} },
	)
	return res.id, res.ok
}

func (p *packer[L, P]) open(id ident.Ident) bool {
	rec, ok := p.r.Views.PaneByIdent(id)
	return ok && rec.ID != nil && p.live[*rec.ID]
}

func (p *packer[L, P]) nativeID(id ident.Ident) (tmux.PaneID, error) {
	rec, ok := p.r.Views.PaneByIdent(id)
	if !ok || rec.ID == nil {
		return 0, fmt.Errorf("pane %s: %w", id, ErrUnbound)
	}
	return *rec.ID, nil
}

func (p *packer[L, P]) move(pane, reference ident.Ident, vertical bool) error {
	id, err := p.nativeID(pane)
	if err != nil {
		return err
	}
	refID, err := p.nativeID(reference)
	if err != nil {
		return err
	}
	want := state.Placement{Reference: reference, ReferenceID: refID, Vertical: vertical}
	if rec, _ := p.r.Views.PaneByIdent(pane); !p.changed && rec.Placement != nil && *rec.Placement == want {
		return nil
	}
	if err := p.r.Client.MovePane(id, refID, vertical); err != nil {
		return fmt.Errorf("pane %s: %w", pane, err)
	}
	events.Render.Move(id.String(), refID.String(), vertical)
	return p.r.Views.SetPlacement(pane, want)
}

func sizeOf[L, P any](t measuredTree[L, P]) int {
	return view.Match(t,
		func(n view.LayoutNode[measure.Measured[L], measure.Measured[P]]) int { return n.Data.Size },
		func(n view.PaneNode[measure.Measured[L], measure.Measured[P]]) int { return n.Data.Size },
		func(view.ForeignNode[measure.Measured[L], measure.Measured[P]]) int { return 0 },
	)
}
