package testutil

import "testing"

func TestStartTmuxServerLifecycle(t *testing.T) {
	socket, cleanup, _ := StartTmuxServer(t)
	defer cleanup()
	if got := Tmux(t, socket, "list-sessions", "-F", "#{session_name}"); got != TestSession {
		t.Fatalf("expected session %q, got %q", TestSession, got)
	}
}
