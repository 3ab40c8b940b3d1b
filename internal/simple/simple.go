// Package simple provides plain pane and layout payloads for view trees.
package simple

import (
	"github.com/atomicstack/tmux-layout-control/internal/ident"
	"github.com/atomicstack/tmux-layout-control/internal/view"
)

// State is the mutable display state shared by panes and layouts.
type State struct {
	Minimized bool
}

// Layout is a layout payload.
type Layout struct {
	ID         ident.Ident
	Geom       view.Geometry
	State      State
	IsVertical bool
}

func (l Layout) Ident() ident.Ident       { return l.ID }
func (l Layout) Geometry() view.Geometry { return l.Geom }
func (l Layout) Minimized() bool         { return l.State.Minimized }
func (l Layout) Vertical() bool          { return l.IsVertical }

// Pane is a pane payload.
type Pane struct {
	ID     ident.Ident
	Geom   view.Geometry
	State  State
	IsOpen bool
	Pin    bool
	Dir    string
}

func (p Pane) Ident() ident.Ident       { return p.ID }
func (p Pane) Geometry() view.Geometry { return p.Geom }
func (p Pane) Minimized() bool         { return p.State.Minimized }
func (p Pane) Open() bool              { return p.IsOpen }
func (p Pane) Pinned() bool            { return p.Pin }
func (p Pane) Cwd() string             { return p.Dir }

func (p Pane) WithOpen(open bool) Pane {
	p.IsOpen = open
	return p
}

// Tree is a view tree of simple payloads.
type Tree = view.Tree[Layout, Pane]

// Node builds a layout node.
func Node(l Layout, children ...Tree) Tree {
	return view.Layout(l, children...)
}

// Leaf builds a pane node.
func Leaf(p Pane) Tree {
	return view.Pane[Layout](p)
}

// Foreign builds an opaque node.
func Foreign(data any) Tree {
	return view.Foreign[Layout, Pane](data)
}

// VLayout is a vertical layout named id.
func VLayout(id string) Layout {
	return Layout{ID: ident.Ensure(id), IsVertical: true}
}

// HLayout is a horizontal layout named id.
func HLayout(id string) Layout {
	return Layout{ID: ident.Ensure(id)}
}

// NewPane is a pane named id.
func NewPane(id string, open bool) Pane {
	return Pane{ID: ident.Ensure(id), IsOpen: open}
}
