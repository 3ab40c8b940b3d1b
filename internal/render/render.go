// Package render reconciles a view tree with a tmux window.
//
// A render runs in fixed steps: the session and window are looked up or
// created, every pane of the tree is opened or closed natively, and the
// window is packed by moving and resizing panes into the measured layout.
package render

import (
	"errors"
	"fmt"

	"github.com/atomicstack/tmux-layout-control/internal/ident"
	"github.com/atomicstack/tmux-layout-control/internal/logging/events"
	"github.com/atomicstack/tmux-layout-control/internal/state"
	"github.com/atomicstack/tmux-layout-control/internal/tmux"
	"github.com/atomicstack/tmux-layout-control/internal/view"
)

// ErrUnbound is returned when a step needs a native id that was never recorded.
var ErrUnbound = errors.New("no native id recorded")

// Renderer renders trees of L layouts and P panes. It is not safe for
// concurrent renders of the same window.
type Renderer[L view.LayoutView, P view.PaneView[P]] struct {
	Client *tmux.Client
	Views  state.Views
	// Cwd is the start directory of panes that do not name one.
	Cwd string
}

func New[L view.LayoutView, P view.PaneView[P]](client *tmux.Client, views state.Views, cwd string) *Renderer[L, P] {
	return &Renderer[L, P]{Client: client, Views: views, Cwd: cwd}
}

// Render makes the window identified by window in session match tree.
// Native changes made before a failing step are kept.
func (r *Renderer[L, P]) Render(session, window ident.Ident, tree view.Tree[L, P]) (err error) {
	done := events.Render.Start(session.String(), window.String())
	defer func() { done(err) }()
	r.Views.FindOrCreateSession(session)
	r.Views.FindOrCreateWindow(window)

	sid, err := r.EnsureSession(session)
	if err != nil {
		return r.fail("ensure session", err)
	}
	win, err := r.EnsureWindow(sid, window, tree)
	if err != nil {
		return r.fail("ensure window", err)
	}
	changed, err := r.EnsureView(win.ID, tree)
	if err != nil {
		return r.fail("ensure view", err)
	}
	st, err := r.WindowState(window)
	if err != nil {
		return r.fail("window state", err)
	}
	if err := r.PackWindow(st, tree, changed); err != nil {
		return r.fail("pack", err)
	}
	return nil
}

func (r *Renderer[L, P]) fail(step string, err error) error {
	events.Render.Failed(step, err)
	return fmt.Errorf("%s: %w", step, err)
}

// EnsureSession returns the native id of the session, creating it when the
// recorded one is gone. An existing session named after the identity is
// adopted instead of created.
func (r *Renderer[L, P]) EnsureSession(id ident.Ident) (tmux.SessionID, error) {
	rec := r.Views.FindOrCreateSession(id)
	sessions, err := r.Client.ListSessions()
	if err != nil {
		return 0, fmt.Errorf("session %s: %w", id, err)
	}
	if rec.ID != nil {
		for _, s := range sessions {
			if s.ID == *rec.ID {
				return s.ID, nil
			}
		}
		r.Views.ClearSessionID(id)
	}
	for _, s := range sessions {
		if s.Name == id.String() {
			if err := r.Views.SetSessionID(id, s.ID); err != nil {
				return 0, err
			}
			return s.ID, nil
		}
	}
	data, err := r.Client.NewSession(id.String())
	if err != nil {
		return 0, fmt.Errorf("session %s: %w", id, err)
	}
	if err := r.Views.SetSessionID(id, data.ID); err != nil {
		return 0, err
	}
	events.Render.CreateSession(id.String(), data.ID.String())
	return data.ID, nil
}

// EnsureWindow returns the window record, creating the window when the
// recorded one is not in the session. The single pane of a new window is
// bound to the tree's principal pane.
func (r *Renderer[L, P]) EnsureWindow(sid tmux.SessionID, id ident.Ident, tree view.Tree[L, P]) (tmux.WindowData, error) {
	rec := r.Views.FindOrCreateWindow(id)
	reason := "untracked"
	if rec.ID != nil {
		data, err := r.Client.SessionWindow(sid, *rec.ID)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, tmux.ErrNotFound) {
			return tmux.WindowData{}, fmt.Errorf("window %s: %w", id, err)
		}
		r.Views.ClearWindowID(id)
		reason = err.Error()
	}
	data, err := r.Client.NewWindow(sid, id.String())
	if err != nil {
		return tmux.WindowData{}, fmt.Errorf("window %s: %w", id, err)
	}
	if err := r.Views.SetWindowID(id, data.ID); err != nil {
		return tmux.WindowData{}, err
	}
	events.Render.CreateWindow(id.String(), data.ID.String(), reason)
	if err := r.bindPrincipal(data.ID, tree); err != nil {
		return tmux.WindowData{}, fmt.Errorf("window %s: %w", id, err)
	}
	return data, nil
}

// Principal is the pane a fresh window's initial pane is bound to: the first
// open pane, or the first pane when none is open.
func Principal[L any, P view.PaneView[P]](tree view.Tree[L, P]) (P, bool) {
	if p, ok := view.FirstOpenPane(tree); ok {
		return p, true
	}
	return view.FirstPane(tree)
}

func (r *Renderer[L, P]) bindPrincipal(wid tmux.WindowID, tree view.Tree[L, P]) error {
	principal, ok := Principal(tree)
	if !ok {
		return nil
	}
	panes, err := r.Client.WindowPanes(wid)
	if err != nil {
		return err
	}
	if len(panes) == 0 {
		return fmt.Errorf("no panes in new window %s", wid)
	}
	id := principal.Ident()
	r.Views.FindOrCreatePane(id)
	r.Views.ClearPaneID(id)
	if err := r.Views.SetPaneID(id, panes[0].ID); err != nil {
		return err
	}
	events.Render.CreatePane(id.String(), panes[0].ID.String())
	return nil
}
