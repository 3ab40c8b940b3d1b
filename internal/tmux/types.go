package tmux

import (
	"fmt"
	"strconv"
	"strings"
)

// SessionID is a native session id, written $N.
type SessionID int

// WindowID is a native window id, written @N.
type WindowID int

// PaneID is a native pane id, written %N.
type PaneID int

func (id SessionID) String() string { return "$" + strconv.Itoa(int(id)) }
func (id WindowID) String() string  { return "@" + strconv.Itoa(int(id)) }
func (id PaneID) String() string    { return "%" + strconv.Itoa(int(id)) }

func ParseSessionID(s string) (SessionID, error) {
	n, err := parseNativeID(s, '$', "session")
	return SessionID(n), err
}

func ParseWindowID(s string) (WindowID, error) {
	n, err := parseNativeID(s, '@', "window")
	return WindowID(n), err
}

func ParsePaneID(s string) (PaneID, error) {
	n, err := parseNativeID(s, '%', "pane")
	return PaneID(n), err
}

func parseNativeID(s string, sigil byte, kind string) (int, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != sigil {
		return 0, fmt.Errorf("invalid %s id %q", kind, s)
	}
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("invalid %s id %q", kind, s)
		}
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil {
		return 0, fmt.Errorf("invalid %s id %q: %w", kind, s, err)
	}
	return n, nil
}

// SessionData is a row of list-sessions.
type SessionData struct {
	ID   SessionID
	Name string
}

// WindowData is a row of list-windows.
type WindowData struct {
	ID     WindowID
	Name   string
	Width  int
	Height int
}

// PaneData is a row of list-panes.
type PaneData struct {
	ID        PaneID
	Width     int
	Height    int
	Top       int
	Left      int
	PID       int
	WindowID  WindowID
	SessionID SessionID
}
