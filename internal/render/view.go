package render

import (
	"fmt"

	"github.com/atomicstack/tmux-layout-control/internal/logging/events"
	"github.com/atomicstack/tmux-layout-control/internal/tmux"
	"github.com/atomicstack/tmux-layout-control/internal/view"
)

// EnsureView opens every open pane of tree in window wid and kills the
// native panes of closed ones. Foreign subtrees are left alone. All opens
// run before any kill, so a closed pane is only kept when nothing else is
// left in the window. It reports whether any pane was created or killed.
func (r *Renderer[L, P]) EnsureView(wid tmux.WindowID, tree view.Tree[L, P]) (bool, error) {
	natives, err := r.Client.WindowPanes(wid)
	if err != nil {
		return false, err
	}
	live := make(map[tmux.PaneID]bool, len(natives))
	for _, p := range natives {
		live[p.ID] = true
	}
	changed := false
	var closed []P
	for _, pane := range view.Panes(tree) {
		if !pane.Open() {
			closed = append(closed, pane)
			continue
		}
		ok, err := r.openPane(wid, pane, live)
		changed = changed || ok
		if err != nil {
			return changed, err
		}
	}
	for _, pane := range closed {
		ok, err := r.closePane(pane, live)
		changed = changed || ok
		if err != nil {
			return changed, err
		}
	}
	return changed, nil
}

// boundPane returns the native id of pane when it is still alive. A stale id
// is cleared from the table.
func (r *Renderer[L, P]) boundPane(pane P, live map[tmux.PaneID]bool) (tmux.PaneID, bool) {
	id := pane.Ident()
	rec := r.Views.FindOrCreatePane(id)
	if rec.ID == nil {
		return 0, false
	}
	if !live[*rec.ID] {
		r.Views.ClearPaneID(id)
		return 0, false
	}
	return *rec.ID, true
}

func (r *Renderer[L, P]) openPane(wid tmux.WindowID, pane P, live map[tmux.PaneID]bool) (bool, error) {
	if _, ok := r.boundPane(pane, live); ok {
		return false, nil
	}
	id := pane.Ident()
	dir := pane.Cwd()
	if dir == "" {
		dir = r.Cwd
	}
	data, err := r.Client.SplitWindow(wid, dir)
	if err != nil {
		return false, fmt.Errorf("pane %s: %w", id, err)
	}
	live[data.ID] = true
	if err := r.Views.SetPaneID(id, data.ID); err != nil {
		return true, err
	}
	events.Render.CreatePane(id.String(), data.ID.String())
	return true, nil
}

func (r *Renderer[L, P]) closePane(pane P, live map[tmux.PaneID]bool) (bool, error) {
	native, ok := r.boundPane(pane, live)
	// tmux closes the window together with its last pane.
	if !ok || len(live) == 1 {
		return false, nil
	}
	id := pane.Ident()
	if err := r.Client.KillPane(native); err != nil {
		return false, fmt.Errorf("pane %s: %w", id, err)
	}
	delete(live, native)
	r.Views.ClearPaneID(id)
	events.Render.KillPane(id.String(), native.String())
	return true, nil
}
