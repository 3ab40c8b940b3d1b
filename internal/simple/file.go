package simple

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atomicstack/tmux-layout-control/internal/ident"
	"github.com/atomicstack/tmux-layout-control/internal/view"
	"gopkg.in/yaml.v3"
)

// Spec is a decoded layout file.
type Spec struct {
	Session string
	Window  string
	Tree    Tree
}

type fileSpec struct {
	Session string   `yaml:"session"`
	Window  string   `yaml:"window"`
	Root    nodeSpec `yaml:"root"`
}

type nodeSpec struct {
	Layout  *string `yaml:"layout"`
	Pane    *string `yaml:"pane"`
	Foreign *string `yaml:"foreign"`

	Vertical  *bool  `yaml:"vertical"`
	Open      bool   `yaml:"open"`
	Pin       bool   `yaml:"pin"`
	Cwd       string `yaml:"cwd"`
	Minimized bool   `yaml:"minimized"`

	Min           *float64 `yaml:"min"`
	Max           *float64 `yaml:"max"`
	Fixed         *float64 `yaml:"fixed"`
	MinimizedSize *float64 `yaml:"minimized_size"`
	Weight        *float64 `yaml:"weight"`
	Position      *float64 `yaml:"position"`

	Children []nodeSpec `yaml:"children"`
}

// LoadFile reads a layout file from disk.
func LoadFile(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, err
	}
	spec, err := Load(bytes.NewReader(data))
	if err != nil {
		return Spec{}, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}

// Load decodes a layout file. The root node must be a layout.
func Load(r io.Reader) (Spec, error) {
	var f fileSpec
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return Spec{}, errors.New("empty layout file")
		}
		return Spec{}, err
	}
	if f.Root.Layout == nil {
		return Spec{}, errors.New("root: must be a layout")
	}
	tree, err := f.Root.tree("root")
	if err != nil {
		return Spec{}, err
	}
	seen := make(map[ident.Ident]bool)
	for _, p := range view.Panes(tree) {
		if seen[p.ID] {
			return Spec{}, fmt.Errorf("duplicate pane %q", p.ID)
		}
		seen[p.ID] = true
	}
	return Spec{Session: f.Session, Window: f.Window, Tree: tree}, nil
}

func (n nodeSpec) tree(path string) (Tree, error) {
	kinds := 0
	for _, set := range []bool{n.Layout != nil, n.Pane != nil, n.Foreign != nil} {
		if set {
			kinds++
		}
	}
	if kinds != 1 {
		return nil, fmt.Errorf("%s: exactly one of layout, pane or foreign is required", path)
	}
	switch {
	case n.Foreign != nil:
		return Foreign(*n.Foreign), nil
	case n.Pane != nil:
		if len(n.Children) > 0 {
			return nil, fmt.Errorf("%s: pane %q cannot have children", path, *n.Pane)
		}
		return Leaf(Pane{
			ID:     ident.Ensure(*n.Pane),
			Geom:   n.geometry(),
			State:  State{Minimized: n.Minimized},
			IsOpen: n.Open,
			Pin:    n.Pin,
			Dir:    n.Cwd,
		}), nil
	}
	vertical := true
	if n.Vertical != nil {
		vertical = *n.Vertical
	}
	children := make([]Tree, 0, len(n.Children))
	for i, c := range n.Children {
		child, err := c.tree(fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	layout := Layout{
		ID:         ident.Ensure(*n.Layout),
		Geom:       n.geometry(),
		State:      State{Minimized: n.Minimized},
		IsVertical: vertical,
	}
	return Node(layout, children...), nil
}

func (n nodeSpec) geometry() view.Geometry {
	amount := func(v *float64) view.Amount {
		if v == nil {
			return view.Amount{}
		}
		return view.Of(*v)
	}
	return view.Geometry{
		Min:           amount(n.Min),
		Max:           amount(n.Max),
		Fixed:         amount(n.Fixed),
		MinimizedSize: amount(n.MinimizedSize),
		Weight:        amount(n.Weight),
		Position:      amount(n.Position),
	}
}
