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

// WindowState is either Pristine or Tracked.
type WindowState interface {
	windowState()
}

// Pristine is a window whose first native pane is not bound to any view.
type Pristine struct {
	Window tmux.WindowData
	Ident  ident.Ident
	Pane   tmux.PaneData
}

// Tracked is a window whose first native pane is bound to Pane. Packing is
// anchored on it.
type Tracked struct {
	Window tmux.WindowData
	Ident  ident.Ident
	Native tmux.PaneData
	Pane   state.Pane
}

func (Pristine) windowState() {}
func (Tracked) windowState()  {}

// WindowState inspects the native panes of the window bound to id.
func (r *Renderer[L, P]) WindowState(id ident.Ident) (WindowState, error) {
	rec, ok := r.Views.WindowByIdent(id)
	if !ok || rec.ID == nil {
		return nil, fmt.Errorf("window %s: %w", id, ErrUnbound)
	}
	win, err := r.Client.Window(*rec.ID)
	if err != nil {
		return nil, fmt.Errorf("window %s: %w", id, err)
	}
	panes, err := r.Client.WindowPanes(win.ID)
	if err != nil {
		return nil, fmt.Errorf("window %s: %w", id, err)
	}
	if len(panes) == 0 {
		return nil, fmt.Errorf("window %s: no panes in %s", id, win.ID)
	}
	if pane, ok := r.Views.PaneByID(panes[0].ID); ok {
		events.Render.State(win.ID.String(), "tracked")
		return Tracked{Window: win, Ident: id, Native: panes[0], Pane: pane}, nil
	}
	events.Render.State(win.ID.String(), "pristine")
	return Pristine{Window: win, Ident: id, Pane: panes[0]}, nil
}

// PackWindow arranges a tracked window. A pristine window is left as it is.
// When changed is false, panes already placed at their reference are not
// moved again.
func (r *Renderer[L, P]) PackWindow(st WindowState, tree view.Tree[L, P], changed bool) error {
	switch s := st.(type) {
	case Pristine:
		return nil
	case Tracked:
		anchor, ok := view.FindIdent(tree, s.Pane.Ident)
		if !ok {
			return fmt.Errorf("tracked pane %s: %w", s.Pane.Ident, view.ErrNoSuchPane)
		}
		measured := measure.Tree(tree, s.Window.Width, s.Window.Height)
		p, err := r.newPacker(changed)
		if err != nil {
			return err
		}
		return p.PackTree(measured, anchor.Ident())
	default:
		return fmt.Errorf("unknown window state %T", st)
	}
}
