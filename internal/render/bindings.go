package render

import (
	"fmt"

	"github.com/atomicstack/tmux-layout-control/internal/ident"
	"github.com/atomicstack/tmux-layout-control/internal/state"
	"github.com/atomicstack/tmux-layout-control/internal/tmux"
)

// Binding is a pane of a rendered window that the table knows about.
type Binding struct {
	Ident     ident.Ident
	ID        tmux.PaneID
	Width     int
	Height    int
	Placement *state.Placement
}

// Bindings lists the bound panes of window in tmux order. Native panes the
// table does not know are left out.
func (r *Renderer[L, P]) Bindings(window ident.Ident) ([]Binding, error) {
	rec, ok := r.Views.WindowByIdent(window)
	if !ok || rec.ID == nil {
		return nil, fmt.Errorf("window %s: %w", window, ErrUnbound)
	}
	panes, err := r.Client.WindowPanes(*rec.ID)
	if err != nil {
		return nil, fmt.Errorf("window %s: %w", window, err)
	}
	out := make([]Binding, 0, len(panes))
	for _, p := range panes {
		rec, ok := r.Views.PaneByID(p.ID)
		if !ok {
			continue
		}
		out = append(out, Binding{
			Ident:     rec.Ident,
			ID:        p.ID,
			Width:     p.Width,
			Height:    p.Height,
			Placement: rec.Placement,
		})
	}
	return out, nil
}
