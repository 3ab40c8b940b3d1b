// Package preview draws a measured view tree as boxes on a cell grid, the
// way tmux would lay the panes out in a window of the same size.
package preview

import (
	"strconv"
	"strings"

	"github.com/atomicstack/tmux-layout-control/internal/ident"
	"github.com/atomicstack/tmux-layout-control/internal/measure"
	"github.com/atomicstack/tmux-layout-control/internal/theme"
	"github.com/atomicstack/tmux-layout-control/internal/view"
	"github.com/charmbracelet/x/ansi"
)

// Rect is a cell rectangle.
type Rect struct {
	Left, Top     int
	Width, Height int
}

// Box is the area a pane would occupy.
type Box struct {
	Ident ident.Ident
	Rect
	Size int
}

// Boxes places every pane of a measured tree inside a width x height window.
// Neighbours are separated by one spacer cell.
func Boxes[L view.LayoutView, P view.PaneView[P]](t view.Tree[measure.Measured[L], measure.Measured[P]], width, height int) []Box {
	var boxes []Box
	var place func(view.Tree[measure.Measured[L], measure.Measured[P]], Rect)
	place = func(t view.Tree[measure.Measured[L], measure.Measured[P]], r Rect) {
		view.Match(t,
			func(n view.LayoutNode[measure.Measured[L], measure.Measured[P]]) struct{} {
				vertical := n.Data.View.Vertical()
				offset := 0
				for _, c := range n.Children {
					size := sizeOf(c)
					child := Rect{Left: r.Left + offset, Top: r.Top, Width: size, Height: r.Height}
					if vertical {
						child = Rect{Left: r.Left, Top: r.Top + offset, Width: r.Width, Height: size}
					}
					place(c, child)
					offset += size + 1
				}
				return struct{}{}
			},
			func(n view.PaneNode[measure.Measured[L], measure.Measured[P]]) struct{} {
				boxes = append(boxes, Box{Ident: n.Data.View.Ident(), Rect: r, Size: n.Data.Size})
				return struct{}{}
			},
			func(view.ForeignNode[measure.Measured[L], measure.Measured[P]]) struct{} { return struct{}{} },
		)
	}
	place(t, Rect{Width: width, Height: height})
	return boxes
}

func sizeOf[L, P any](t view.Tree[measure.Measured[L], measure.Measured[P]]) int {
	return view.Match(t,
		func(n view.LayoutNode[measure.Measured[L], measure.Measured[P]]) int { return n.Data.Size },
		func(n view.PaneNode[measure.Measured[L], measure.Measured[P]]) int { return n.Data.Size },
		func(view.ForeignNode[measure.Measured[L], measure.Measured[P]]) int { return 0 },
	)
}

// Draw renders boxes onto a width x height grid of plain text. Each box gets
// a border with its label on the top edge. Boxes are clipped to the grid.
func Draw(boxes []Box, width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}
	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", width))
	}
	set := func(x, y int, r rune) {
		if x >= 0 && x < width && y >= 0 && y < height {
			grid[y][x] = r
		}
	}
	for _, b := range boxes {
		if b.Width <= 0 || b.Height <= 0 {
			continue
		}
		right, bottom := b.Left+b.Width-1, b.Top+b.Height-1
		for x := b.Left; x <= right; x++ {
			set(x, b.Top, '─')
			set(x, bottom, '─')
		}
		for y := b.Top; y <= bottom; y++ {
			set(b.Left, y, '│')
			set(right, y, '│')
		}
		set(b.Left, b.Top, '┌')
		set(right, b.Top, '┐')
		set(b.Left, bottom, '└')
		set(right, bottom, '┘')
		if b.Width > 2 {
			label := ansi.Truncate(Label(b), b.Width-2, "…")
			for i, r := range []rune(label) {
				set(b.Left+1+i, b.Top, r)
			}
		}
	}
	lines := make([]string, height)
	for y, row := range grid {
		lines[y] = string(row)
	}
	return lines
}

// Label is the text shown on a box: the pane identity and its size.
func Label(b Box) string {
	return b.Ident.String() + " " + strconv.Itoa(b.Width) + "x" + strconv.Itoa(b.Height)
}

// Render measures tree and draws it with the preview styles.
func Render[L view.LayoutView, P view.PaneView[P]](styles *theme.Styles, title string, tree view.Tree[L, P], width, height int) string {
	measured := measure.Tree(tree, width, height)
	lines := Draw(Boxes(measured, width, height), width, height)
	var b strings.Builder
	if title != "" {
		b.WriteString(theme.Render(styles.PreviewTitle, ansi.Truncate(title, width, "…")))
		b.WriteByte('\n')
	}
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(theme.Render(styles.PreviewBody, line))
	}
	return b.String()
}
