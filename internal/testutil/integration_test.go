package testutil

import (
	"strings"
	"testing"
	"time"
)

const integrationLayout = `
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
          open: true
        - pane: logs
`

func TestRenderModeCreatesOpenPanes(t *testing.T) {
	bin := BuildBinary(t)
	socket, cleanup, logDir := StartTmuxServer(t)
	defer cleanup()
	t.Cleanup(func() {
		AssertNoServerCrash(t, logDir)
	})
	layout := WriteFile(t, "layout.yaml", integrationLayout)

	out, err := RunBinary(t, bin, socket, "--layout", layout, "--mode", "render")
	if err != nil {
		t.Fatalf("render failed: %v: %s", err, out)
	}
	if !strings.Contains(out, "PANE") || !strings.Contains(out, "shell") {
		t.Fatalf("expected a binding summary, got:\n%s", out)
	}
	WaitForPaneCount(t, socket, "work:editor", 2, 2*time.Second)
	layoutDesc := Tmux(t, socket, "display-message", "-p", "-t", "work:editor", "#{window_layout}")
	if !strings.Contains(layoutDesc, "[") {
		t.Fatalf("expected a vertical split, got layout %q", layoutDesc)
	}
}

func TestToggleFlagOpensPane(t *testing.T) {
	bin := BuildBinary(t)
	socket, cleanup, _ := StartTmuxServer(t)
	defer cleanup()
	layout := WriteFile(t, "layout.yaml", integrationLayout)

	out, err := RunBinary(t, bin, socket, "--layout", layout, "--session", "other", "--toggle", "logs")
	if err != nil {
		t.Fatalf("render failed: %v: %s", err, out)
	}
	WaitForPaneCount(t, socket, "other:editor", 3, 2*time.Second)
}

func TestExecModeRunsCommands(t *testing.T) {
	bin := BuildBinary(t)
	socket, cleanup, _ := StartTmuxServer(t)
	defer cleanup()

	out, err := RunBinary(t, bin, socket, "--mode", "exec", "--", "list-sessions -F #{session_name}")
	if err != nil {
		t.Fatalf("exec failed: %v: %s", err, out)
	}
	if !strings.Contains(out, TestSession) {
		t.Fatalf("expected %s in output, got %q", TestSession, out)
	}
}

func TestPreviewModeNeedsNoServer(t *testing.T) {
	bin := BuildBinary(t)
	layout := WriteFile(t, "layout.yaml", integrationLayout)
	out, err := RunBinary(t, bin, "/nonexistent/socket", "--layout", layout, "--mode", "preview", "--width", "40", "--height", "10")
	if err != nil {
		t.Fatalf("preview failed: %v: %s", err, out)
	}
	if !strings.Contains(out, "editor 40x") || !strings.Contains(out, "shell") {
		t.Fatalf("unexpected preview output:\n%s", out)
	}
}
