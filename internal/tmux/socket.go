package tmux

import (
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"strings"
)

const envSocketPath = "TMUX_LAYOUT_CONTROL_SOCKET"

func baseArgs(socketPath string) []string {
	if strings.TrimSpace(socketPath) == "" {
		return []string{}
	}
	return []string{"-S", socketPath}
}

// ResolveSocketPath picks the server socket from the flag, the environment,
// the enclosing tmux session or the default per-user location.
func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if envSocket := os.Getenv(envSocketPath); envSocket != "" {
		return envSocket, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}

var runExecCommand = func(name string, args ...string) commander {
	cmd := exec.Command(name, args...)
	cmd.Env = controlEnv(os.Environ())
	return cmd
}

type commander interface {
	Run() error
	CombinedOutput() ([]byte, error)
}

// StartServer boots a server with a detached session named session when no
// server answers at socketPath. A control client cannot attach to an empty
// server, so this runs through a plain tmux invocation.
func StartServer(socketPath, session string) error {
	if err := runExecCommand("tmux", append(baseArgs(socketPath), "has-session")...).Run(); err == nil {
		return nil
	}
	args := append(baseArgs(socketPath), "new-session", "-d", "-s", session)
	out, err := runExecCommand("tmux", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("starting tmux server: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
