package simple

import (
	"strings"
	"testing"

	"github.com/atomicstack/tmux-layout-control/internal/ident"
	"github.com/atomicstack/tmux-layout-control/internal/view"
)

const sampleFile = `
session: work
window: dev
root:
  layout: main
  vertical: false
  children:
    - pane: editor
      open: true
      weight: 3
      cwd: /src
    - layout: side
      min: 0.25
      children:
        - pane: shell
          pin: true
        - pane: log
          minimized: true
          fixed: 10
    - foreign: plugin
`

func TestLoadBuildsTree(t *testing.T) {
	spec, err := Load(strings.NewReader(sampleFile))
	if err != nil {
		t.Fatalf("Load returned %v", err)
	}
	if spec.Session != "work" || spec.Window != "dev" {
		t.Fatalf("unexpected names %q %q", spec.Session, spec.Window)
	}
	root, ok := spec.Tree.(view.LayoutNode[Layout, Pane])
	if !ok {
		t.Fatalf("expected layout root, got %T", spec.Tree)
	}
	if root.Data.Vertical() || len(root.Children) != 3 {
		t.Fatalf("unexpected root %#v", root.Data)
	}
	editor, ok := view.FindIdent(spec.Tree, ident.Str("editor"))
	if !ok || !editor.Open() || editor.Cwd() != "/src" || editor.Geometry().Weight.Or(0) != 3 {
		t.Fatalf("unexpected editor %#v", editor)
	}
	side := root.Children[1].(view.LayoutNode[Layout, Pane])
	if !side.Data.Vertical() || side.Data.Geometry().Min.Or(0) != 0.25 {
		t.Fatalf("expected vertical side layout with min, got %#v", side.Data)
	}
	shell, _ := view.FindIdent(spec.Tree, ident.Str("shell"))
	if !shell.Pinned() || shell.Open() {
		t.Fatalf("unexpected shell %#v", shell)
	}
	log, _ := view.FindIdent(spec.Tree, ident.Str("log"))
	if !log.Minimized() || log.Geometry().Fixed.Or(0) != 10 {
		t.Fatalf("unexpected log %#v", log)
	}
	if _, ok := root.Children[2].(view.ForeignNode[Layout, Pane]); !ok {
		t.Fatalf("expected foreign node, got %T", root.Children[2])
	}
}

func TestLoadRejectsInvalidFiles(t *testing.T) {
	cases := map[string]string{
		"root pane":      "root:\n  pane: x\n",
		"two kinds":      "root:\n  layout: a\n  children:\n    - pane: x\n      layout: y\n",
		"pane children":  "root:\n  layout: a\n  children:\n    - pane: x\n      children:\n        - pane: y\n",
		"duplicate pane": "root:\n  layout: a\n  children:\n    - pane: x\n    - pane: x\n",
		"unknown field":  "root:\n  layout: a\n  colour: red\n",
		"empty":          "",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(input)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestEmptyIdentsAreGenerated(t *testing.T) {
	spec, err := Load(strings.NewReader("root:\n  layout: ''\n  children:\n    - pane: ''\n    - pane: ''\n"))
	if err != nil {
		t.Fatalf("Load returned %v", err)
	}
	panes := view.Panes(spec.Tree)
	if len(panes) != 2 || panes[0].ID == panes[1].ID || panes[0].ID.Kind() != ident.KindUUID {
		t.Fatalf("expected distinct generated idents, got %#v", panes)
	}
}

func TestWithOpenCopies(t *testing.T) {
	p := NewPane("a", false)
	q := p.WithOpen(true)
	if p.Open() || !q.Open() {
		t.Fatalf("expected copy semantics")
	}
}
