package measure

import (
	"github.com/atomicstack/tmux-layout-control/internal/view"
)

// Measured attaches the computed size along the parent's axis to a payload.
type Measured[T any] struct {
	View T
	Size int
}

// Sizes balances a sibling group into total cells, reserving one spacer cell
// between neighbours.
func Sizes(views []view.Measurable, total int) []int {
	if len(views) == 0 {
		return nil
	}
	cells := float64(total - (len(views) - 1))
	inCells := func(s float64) float64 {
		if s > 1 {
			return s
		}
		return s * cells
	}
	inputs := make([]Input, len(views))
	weights := make([]float64, len(views))
	present := make([]bool, len(views))
	for i, v := range views {
		geo := v.Geometry()
		fixed := geo.Fixed
		if v.Minimized() {
			fixed = view.Of(geo.MinimizedSize.Or(view.DefaultMinimizedSize))
		}
		in := Input{Minimized: v.Minimized()}
		if f, ok := fixed.Get(); ok {
			in.Min = inCells(f)
			in.Max, in.HasMax = inCells(f), true
			present[i] = true
		} else {
			in.Min = inCells(geo.Min.Or(0))
			if m, ok := geo.Max.Get(); ok {
				in.Max, in.HasMax = inCells(m), true
			}
			weights[i], present[i] = geo.Weight.Get()
		}
		inputs[i] = in
	}
	for i, w := range Weights(weights, present) {
		inputs[i].Weight = w
	}
	return Balance(inputs, cells)
}

// Tree measures t against a window of width x height cells. Layout children
// that are closed are left out of the result; foreign subtrees are kept as
// they are.
func Tree[L view.LayoutView, P view.PaneView[P]](t view.Tree[L, P], width, height int) view.Tree[Measured[L], Measured[P]] {
	size := view.Match(t,
		func(n view.LayoutNode[L, P]) int {
			if n.Data.Vertical() {
				return height
			}
			return width
		},
		func(view.PaneNode[L, P]) int { return width },
		func(view.ForeignNode[L, P]) int { return 0 },
	)
	return measureNode(t, size, width, height)
}

func measureNode[L view.LayoutView, P view.PaneView[P]](t view.Tree[L, P], size, width, height int) view.Tree[Measured[L], Measured[P]] {
	return view.Match(t,
		func(n view.LayoutNode[L, P]) view.Tree[Measured[L], Measured[P]] {
			vertical := n.Data.Vertical()
			total := width
			if vertical {
				total = height
			}
			open := view.OpenChildren(n)
			payloads := make([]view.Measurable, len(open))
			for i, c := range open {
				payloads[i] = payload(c)
			}
			sizes := Sizes(payloads, total)
			children := make([]view.Tree[Measured[L], Measured[P]], len(open))
			for i, c := range open {
				w, h := sizes[i], height
				if vertical {
					w, h = width, sizes[i]
				}
				children[i] = measureNode(c, sizes[i], w, h)
			}
			return view.LayoutNode[Measured[L], Measured[P]]{
				Data:     Measured[L]{View: n.Data, Size: size},
				Children: children,
			}
		},
		func(n view.PaneNode[L, P]) view.Tree[Measured[L], Measured[P]] {
			return view.PaneNode[Measured[L], Measured[P]]{Data: Measured[P]{View: n.Data, Size: size}}
		},
		func(n view.ForeignNode[L, P]) view.Tree[Measured[L], Measured[P]] {
			return view.ForeignNode[Measured[L], Measured[P]]{Data: n.Data}
		},
	)
}

func payload[L view.LayoutView, P view.PaneView[P]](t view.Tree[L, P]) view.Measurable {
	return view.Match(t,
		func(n view.LayoutNode[L, P]) view.Measurable { return n.Data },
		func(n view.PaneNode[L, P]) view.Measurable { return n.Data },
		func(view.ForeignNode[L, P]) view.Measurable { return nil },
	)
}
