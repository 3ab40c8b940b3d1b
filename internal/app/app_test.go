package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/tmux-layout-control/internal/ident"
	"github.com/atomicstack/tmux-layout-control/internal/simple"
	"github.com/atomicstack/tmux-layout-control/internal/tmux"
	"github.com/charmbracelet/x/ansi"
)

const layoutYAML = `
session: work
window: editor
root:
  layout: main
  vertical: true
  children:
    - pane: editor
      open: true
    - layout: tools
      vertical: false
      children:
        - pane: shell
        - pane: logs
`

func writeLayout(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layout.yaml")
	if err := os.WriteFile(path, []byte(layoutYAML), 0o644); err != nil {
		t.Fatalf("write layout: %v", err)
	}
	return path
}

type scriptedExecutor struct {
	batches [][]tmux.Command
}

func (e *scriptedExecutor) Execute(cmds []tmux.Command) ([]tmux.Outcome, error) {
	e.batches = append(e.batches, cmds)
	out := make([]tmux.Outcome, len(cmds))
	for i, c := range cmds {
		out[i] = tmux.Outcome{Command: c}
		if c.Verb == "bogus" {
			out[i].Failed = true
			out[i].Lines = []string{"unknown command: bogus"}
			continue
		}
		out[i].Lines = []string{"ok " + c.Verb}
	}
	return out, nil
}

func stubConnection(t *testing.T, exec tmux.Executor) {
	t.Helper()
	origResolve, origStart, origOpen := resolveSocket, startServer, openClient
	resolveSocket = func(string) (string, error) { return "/tmp/test.sock", nil }
	startServer = func(string, string) error { return nil }
	openClient = func(context.Context, string, string) (*tmux.Client, error) {
		return tmux.NewClient(exec), nil
	}
	t.Cleanup(func() {
		resolveSocket, startServer, openClient = origResolve, origStart, origOpen
	})
}

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	origOut, origErr := stdout, stderr
	var out, errOut bytes.Buffer
	stdout, stderr = &out, &errOut
	t.Cleanup(func() { stdout, stderr = origOut, origErr })
	return &out, &errOut
}

func TestPreviewModeDrawsOpenPanes(t *testing.T) {
	out, _ := captureOutput(t)
	cfg := Config{Mode: ModePreview, LayoutPath: writeLayout(t), Width: 40, Height: 12, Toggle: []string{"shell"}}
	if err := Run(cfg); err != nil {
		t.Fatalf("Run: %v", err)
	}
	text := ansi.Strip(out.String())
	for _, want := range []string{"work:editor", "┌editor", "┌shell"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in preview:\n%s", want, text)
		}
	}
	if strings.Contains(text, "┌logs") {
		t.Fatalf("closed pane drawn:\n%s", text)
	}
}

func TestPreviewUsesTerminalSizeFallback(t *testing.T) {
	out, _ := captureOutput(t)
	orig := terminalSize
	terminalSize = func() (int, int, error) { return 30, 8, nil }
	t.Cleanup(func() { terminalSize = orig })
	if err := Run(Config{Mode: ModePreview, LayoutPath: writeLayout(t)}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(ansi.Strip(out.String()), "editor 30x") {
		t.Fatalf("expected a 30 column box:\n%s", ansi.Strip(out.String()))
	}
}

func TestLoadLayoutRequiresPath(t *testing.T) {
	if err := Run(Config{Mode: ModeRender}); err == nil {
		t.Fatal("expected missing layout error")
	}
}

func TestLoadLayoutOverrides(t *testing.T) {
	spec, err := loadLayout(Config{LayoutPath: writeLayout(t), Session: "other", Window: "w2"})
	if err != nil {
		t.Fatalf("loadLayout: %v", err)
	}
	if spec.Session != "other" || spec.Window != "w2" {
		t.Fatalf("expected overrides, got %s:%s", spec.Session, spec.Window)
	}
}

func TestResolvePane(t *testing.T) {
	tree := simple.Node(simple.VLayout("main"),
		simple.Leaf(simple.NewPane("editor", true)),
		simple.Leaf(simple.NewPane("logs-server", false)),
		simple.Leaf(simple.NewPane("logs", false)),
	)
	cases := map[string]string{
		"logs":  "logs",
		"edtr":  "editor",
		"lgsrv": "logs-server",
	}
	for query, want := range cases {
		got, err := ResolvePane(tree, query)
		if err != nil {
			t.Fatalf("ResolvePane(%q): %v", query, err)
		}
		if got != ident.Str(want) {
			t.Fatalf("ResolvePane(%q) = %v, want %s", query, got, want)
		}
	}
	if _, err := ResolvePane(tree, "zzz"); err == nil {
		t.Fatal("expected no match")
	}
}

func TestExecModePrintsReplies(t *testing.T) {
	exec := &scriptedExecutor{}
	stubConnection(t, exec)
	out, errOut := captureOutput(t)
	err := Run(Config{Mode: ModeExec, Args: []string{"list-sessions", "  ", "display-message -p hi"}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(exec.batches) != 1 || len(exec.batches[0]) != 2 {
		t.Fatalf("expected one batch of two commands, got %v", exec.batches)
	}
	if got := exec.batches[0][1].Line(); got != "display-message -p hi" {
		t.Fatalf("unexpected command line %q", got)
	}
	if out.String() != "ok list-sessions\nok display-message\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
	if errOut.Len() != 0 {
		t.Fatalf("unexpected stderr %q", errOut.String())
	}
}

func TestExecModeReportsFailedCommands(t *testing.T) {
	stubConnection(t, &scriptedExecutor{})
	out, errOut := captureOutput(t)
	err := Run(Config{Mode: ModeExec, Args: []string{"bogus", "list-sessions"}})
	if err == nil || !strings.Contains(err.Error(), "unknown command: bogus") {
		t.Fatalf("expected command error, got %v", err)
	}
	if !strings.Contains(errOut.String(), "bogus") || out.String() != "ok list-sessions\n" {
		t.Fatalf("unexpected output %q / %q", out.String(), errOut.String())
	}
}

func TestExecModeNeedsCommands(t *testing.T) {
	if err := Run(Config{Mode: ModeExec}); err == nil {
		t.Fatal("expected error without commands")
	}
}
