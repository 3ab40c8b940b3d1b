// Package view holds the declarative layout tree that is rendered onto tmux.
//
// A Tree is a closed union of three node kinds. Every traversal is written
// against Match, which takes one handler per kind, so adding a kind breaks
// every call site at compile time instead of silently falling through.
package view

import (
	"fmt"

	"github.com/atomicstack/tmux-layout-control/internal/ident"
)

// Tree is a layout tree over layout payloads L and pane payloads P.
type Tree[L, P any] interface {
	node(L, P)
}

// LayoutNode arranges its children along one axis.
type LayoutNode[L, P any] struct {
	Data     L
	Children []Tree[L, P]
}

// PaneNode is a single terminal viewport.
type PaneNode[L, P any] struct {
	Data P
}

// ForeignNode is a subtree managed by another renderer. It is never
// inspected and is carried through every transformation unchanged.
type ForeignNode[L, P any] struct {
	Data any
}

func (LayoutNode[L, P]) node(L, P)  {}
func (PaneNode[L, P]) node(L, P)    {}
func (ForeignNode[L, P]) node(L, P) {}

// Layout builds a layout node.
func Layout[L, P any](data L, children ...Tree[L, P]) Tree[L, P] {
	return LayoutNode[L, P]{Data: data, Children: children}
}

// Pane builds a pane node.
func Pane[L, P any](data P) Tree[L, P] {
	return PaneNode[L, P]{Data: data}
}

// Foreign builds an opaque node.
func Foreign[L, P any](data any) Tree[L, P] {
	return ForeignNode[L, P]{Data: data}
}

// Match dispatches on the node kind.
func Match[L, P, R any](
	t Tree[L, P],
	onLayout func(LayoutNode[L, P]) R,
	onPane func(PaneNode[L, P]) R,
	onForeign func(ForeignNode[L, P]) R,
) R {
	switch n := t.(type) {
	case LayoutNode[L, P]:
		return onLayout(n)
	case PaneNode[L, P]:
		return onPane(n)
	case ForeignNode[L, P]:
		return onForeign(n)
	default:
		panic(fmt.Sprintf("view: unknown tree node %T", t))
	}
}

// Identified is implemented by every payload that can be bound to tmux.
type Identified interface {
	Ident() ident.Ident
}

// Measurable payloads take part in size balancing.
type Measurable interface {
	Identified
	Geometry() Geometry
	Minimized() bool
}

// LayoutView is the capability set required of layout payloads.
type LayoutView interface {
	Measurable
	Vertical() bool
}

// PaneView is the capability set required of pane payloads. WithOpen returns
// a copy with the open state replaced.
type PaneView[P any] interface {
	Measurable
	Open() bool
	Pinned() bool
	Cwd() string
	WithOpen(open bool) P
}
