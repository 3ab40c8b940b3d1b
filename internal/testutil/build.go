package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// BuildBinary compiles the command at the repository root into a temp dir.
func BuildBinary(t *testing.T) string {
	t.Helper()
	RequireTmux(t)
	tdir := t.TempDir()
	bin := filepath.Join(tdir, "tmux-layout-control")
	cmd := exec.Command("go", "build", "-o", bin, ".")
	cmd.Dir = RepoRoot(t)
	cmd.Env = append(os.Environ(), "GOCACHE="+filepath.Join(tdir, ".gocache"))
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build binary: %v: %s", err, out)
	}
	return bin
}

// RunBinary runs bin against socket outside of any enclosing tmux session
// and returns its combined output.
func RunBinary(t *testing.T, bin, socket string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(bin, append([]string{"--socket", socket}, args...)...)
	cmd.Env = tmuxCommand(socket).Env
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// WaitForPaneCount polls until target has want panes.
func WaitForPaneCount(t *testing.T, socket, target string, want int, timeout time.Duration) []string {
	t.Helper()
	deadline := time.Now().Add(timeout)
	var panes []string
	for {
		out, err := tmuxCommand(socket, "list-panes", "-t", target, "-F", "#{pane_id}").Output()
		if err == nil {
			panes = strings.Fields(string(out))
			if len(panes) == want {
				return panes
			}
		}
		if time.Now().After(deadline) {
			t.Fatalf("timeout waiting for %d panes in %s, have %v (last error: %v)", want, target, panes, err)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

// WriteFile writes content to name under a fresh temp dir and returns its path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// RepoRoot walks up from the working directory to the directory holding go.mod.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
