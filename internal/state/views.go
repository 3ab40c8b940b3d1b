// Package state keeps the binding between view identities and native tmux
// entities for the lifetime of a process.
package state

import (
	"errors"
	"fmt"

	"github.com/atomicstack/tmux-layout-control/internal/ident"
	"github.com/atomicstack/tmux-layout-control/internal/tmux"
)

var (
	// ErrUnknown is returned when a record has not been created yet.
	ErrUnknown = errors.New("unknown view")
	// ErrAlreadyBound is returned when a record already carries a different
	// native id.
	ErrAlreadyBound = errors.New("view already bound")
)

// Session is the record of a session identity.
type Session struct {
	Ident ident.Ident
	ID    *tmux.SessionID
}

// Window is the record of a window identity.
type Window struct {
	Ident ident.Ident
	ID    *tmux.WindowID
}

// Placement is where a pane was last attached.
type Placement struct {
	Reference   ident.Ident
	ReferenceID tmux.PaneID
	Vertical    bool
}

// Pane is the record of a pane identity.
type Pane struct {
	Ident     ident.Ident
	ID        *tmux.PaneID
	Placement *Placement
}

// Views is the binding table.
type Views interface {
	SessionByIdent(ident.Ident) (Session, bool)
	WindowByIdent(ident.Ident) (Window, bool)
	PaneByIdent(ident.Ident) (Pane, bool)
	PaneByID(tmux.PaneID) (Pane, bool)
	Panes() []Pane

	FindOrCreateSession(ident.Ident) Session
	FindOrCreateWindow(ident.Ident) Window
	FindOrCreatePane(ident.Ident) Pane

	SetSessionID(ident.Ident, tmux.SessionID) error
	SetWindowID(ident.Ident, tmux.WindowID) error
	SetPaneID(ident.Ident, tmux.PaneID) error
	ClearSessionID(ident.Ident)
	ClearWindowID(ident.Ident)
	ClearPaneID(ident.Ident)

	SetPlacement(ident.Ident, Placement) error
}

type views struct {
	sessions  map[ident.Ident]*Session
	windows   map[ident.Ident]*Window
	panes     map[ident.Ident]*Pane
	paneOrder []ident.Ident
}

func NewViews() Views {
	return &views{
		sessions: make(map[ident.Ident]*Session),
		windows:  make(map[ident.Ident]*Window),
		panes:    make(map[ident.Ident]*Pane),
	}
}

func (v *views) SessionByIdent(id ident.Ident) (Session, bool) {
	s, ok := v.sessions[id]
	if !ok {
		return Session{}, false
	}
	return s.clone(), true
}

func (v *views) WindowByIdent(id ident.Ident) (Window, bool) {
	w, ok := v.windows[id]
	if !ok {
		return Window{}, false
	}
	return w.clone(), true
}

func (v *views) PaneByIdent(id ident.Ident) (Pane, bool) {
	p, ok := v.panes[id]
	if !ok {
		return Pane{}, false
	}
	return p.clone(), true
}

func (v *views) PaneByID(id tmux.PaneID) (Pane, bool) {
	for _, key := range v.paneOrder {
		p := v.panes[key]
		if p.ID != nil && *p.ID == id {
			return p.clone(), true
		}
	}
	return Pane{}, false
}

// Panes returns every pane record in creation order.
func (v *views) Panes() []Pane {
	if len(v.paneOrder) == 0 {
		return nil
	}
	out := make([]Pane, 0, len(v.paneOrder))
	for _, key := range v.paneOrder {
		out = append(out, v.panes[key].clone())
	}
	return out
}

func (v *views) FindOrCreateSession(id ident.Ident) Session {
	s, ok := v.sessions[id]
	if !ok {
		s = &Session{Ident: id}
		v.sessions[id] = s
	}
	return s.clone()
}

func (v *views) FindOrCreateWindow(id ident.Ident) Window {
	w, ok := v.windows[id]
	if !ok {
		w = &Window{Ident: id}
		v.windows[id] = w
	}
	return w.clone()
}

func (v *views) FindOrCreatePane(id ident.Ident) Pane {
	p, ok := v.panes[id]
	if !ok {
		p = &Pane{Ident: id}
		v.panes[id] = p
		v.paneOrder = append(v.paneOrder, id)
	}
	return p.clone()
}

func (v *views) SetSessionID(id ident.Ident, native tmux.SessionID) error {
	s, ok := v.sessions[id]
	if !ok {
		return fmt.Errorf("session %s: %w", id, ErrUnknown)
	}
	if err := bind(&s.ID, native); err != nil {
		return fmt.Errorf("session %s: %w", id, err)
	}
	return nil
}

func (v *views) SetWindowID(id ident.Ident, native tmux.WindowID) error {
	w, ok := v.windows[id]
	if !ok {
		return fmt.Errorf("window %s: %w", id, ErrUnknown)
	}
	if err := bind(&w.ID, native); err != nil {
		return fmt.Errorf("window %s: %w", id, err)
	}
	return nil
}

func (v *views) SetPaneID(id ident.Ident, native tmux.PaneID) error {
	p, ok := v.panes[id]
	if !ok {
		return fmt.Errorf("pane %s: %w", id, ErrUnknown)
	}
	if err := bind(&p.ID, native); err != nil {
		return fmt.Errorf("pane %s: %w", id, err)
	}
	return nil
}

func (v *views) ClearSessionID(id ident.Ident) {
	if s, ok := v.sessions[id]; ok {
		s.ID = nil
	}
}

func (v *views) ClearWindowID(id ident.Ident) {
	if w, ok := v.windows[id]; ok {
		w.ID = nil
	}
}

// ClearPaneID forgets the native pane and its placement.
func (v *views) ClearPaneID(id ident.Ident) {
	if p, ok := v.panes[id]; ok {
		p.ID = nil
		p.Placement = nil
	}
}

func (v *views) SetPlacement(id ident.Ident, placement Placement) error {
	p, ok := v.panes[id]
	if !ok {
		return fmt.Errorf("pane %s: %w", id, ErrUnknown)
	}
	p.Placement = &placement
	return nil
}

func bind[T comparable](slot **T, native T) error {
	if *slot != nil {
		if **slot == native {
			return nil
		}
		return fmt.Errorf("%w to %v", ErrAlreadyBound, **slot)
	}
	*slot = &native
	return nil
}

func (s *Session) clone() Session {
	dup := *s
	dup.ID = cloneID(s.ID)
	return dup
}

func (w *Window) clone() Window {
	dup := *w
	dup.ID = cloneID(w.ID)
	return dup
}

func (p *Pane) clone() Pane {
	dup := *p
	dup.ID = cloneID(p.ID)
	if p.Placement != nil {
		placement := *p.Placement
		dup.Placement = &placement
	}
	return dup
}

func cloneID[T any](id *T) *T {
	if id == nil {
		return nil
	}
	dup := *id
	return &dup
}
