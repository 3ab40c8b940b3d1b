package tmux

import (
	"fmt"
	"strconv"
)

var paneFields = []string{"pane_id", "pane_width", "pane_height", "pane_top", "pane_left", "pane_pid", "window_id", "session_id"}

func paneFromRow(r row) (PaneData, error) {
	var p PaneData
	var err error
	if p.ID, err = ParsePaneID(r["pane_id"]); err != nil {
		return PaneData{}, err
	}
	if p.WindowID, err = ParseWindowID(r["window_id"]); err != nil {
		return PaneData{}, err
	}
	if p.SessionID, err = ParseSessionID(r["session_id"]); err != nil {
		return PaneData{}, err
	}
	for field, dst := range map[string]*int{
		"pane_width":  &p.Width,
		"pane_height": &p.Height,
		"pane_top":    &p.Top,
		"pane_left":   &p.Left,
		"pane_pid":    &p.PID,
	} {
		if *dst, err = r.number(field); err != nil {
			return PaneData{}, err
		}
	}
	return p, nil
}

// AllPanes lists the panes of every session.
func (c *Client) AllPanes() ([]PaneData, error) {
	return query(c, "list-panes", []string{"-a"}, paneFields, paneFromRow)
}

// WindowPanes lists the panes of one window in layout order.
func (c *Client) WindowPanes(wid WindowID) ([]PaneData, error) {
	return query(c, "list-panes", []string{"-t", wid.String()}, paneFields, paneFromRow)
}

// WindowPane looks up a pane inside a window.
func (c *Client) WindowPane(wid WindowID, id PaneID) (PaneData, error) {
	panes, err := c.WindowPanes(wid)
	if err != nil {
		return PaneData{}, err
	}
	if p, ok := findPane(panes, id); ok {
		return p, nil
	}
	return PaneData{}, fmt.Errorf("pane %s in window %s: %w", id, wid, ErrNotFound)
}

// Pane looks up a pane on the whole server.
func (c *Client) Pane(id PaneID) (PaneData, error) {
	panes, err := c.AllPanes()
	if err != nil {
		return PaneData{}, err
	}
	if p, ok := findPane(panes, id); ok {
		return p, nil
	}
	return PaneData{}, fmt.Errorf("pane %s: %w", id, ErrNotFound)
}

// PaneOpen reports whether the pane still exists.
func (c *Client) PaneOpen(id PaneID) (bool, error) {
	panes, err := c.AllPanes()
	if err != nil {
		return false, err
	}
	_, ok := findPane(panes, id)
	return ok, nil
}

func findPane(panes []PaneData, id PaneID) (PaneData, bool) {
	for _, p := range panes {
		if p.ID == id {
			return p, true
		}
	}
	return PaneData{}, false
}

// SplitWindow creates a detached pane in wid, starting in dir when set.
func (c *Client) SplitWindow(wid WindowID, dir string) (PaneData, error) {
	args := []string{"-t", wid.String(), "-d", "-P"}
	if dir != "" {
		args = append(args, "-c", dir)
	}
	panes, err := query(c, "split-window", args, paneFields, paneFromRow)
	if err != nil {
		return PaneData{}, err
	}
	if len(panes) == 0 {
		return PaneData{}, fmt.Errorf("no output when creating pane in %s", wid)
	}
	return panes[0], nil
}

func (c *Client) KillPane(id PaneID) error {
	return c.Write("kill-pane", "-t", id.String())
}

// MovePane joins id next to ref, below it when vertical and to its right otherwise.
func (c *Client) MovePane(id, ref PaneID, vertical bool) error {
	return c.Write("move-pane", "-d", "-s", id.String(), "-t", ref.String(), splitFlag(vertical))
}

// ResizePane sets the pane's height when vertical and its width otherwise.
func (c *Client) ResizePane(id PaneID, vertical bool, size int) error {
	return c.Write("resize-pane", "-t", id.String(), sizeFlag(vertical), strconv.Itoa(size))
}

// ResizeCommand is ResizePane as a batchable command.
func ResizeCommand(id PaneID, vertical bool, size int) Command {
	return Cmd("resize-pane", "-t", id.String(), sizeFlag(vertical), strconv.Itoa(size))
}

func splitFlag(vertical bool) string {
	if vertical {
		return "-v"
	}
	return "-h"
}

func sizeFlag(vertical bool) string {
	if vertical {
		return "-y"
	}
	return "-x"
}

// SendKeys types each line literally into the pane followed by Enter.
func (c *Client) SendKeys(id PaneID, lines []string) error {
	cmds := make([]Command, 0, 2*len(lines))
	for _, line := range lines {
		cmds = append(cmds,
			Cmd("send-keys", "-t", id.String(), "-l", line),
			Cmd("send-keys", "-t", id.String(), "Enter"),
		)
	}
	return c.WriteAll(cmds...)
}

// CapturePane returns the visible pane contents without trailing blank lines.
func (c *Client) CapturePane(id PaneID) ([]string, error) {
	lines, err := c.Read("capture-pane", "-p", "-t", id.String())
	if err != nil {
		return nil, err
	}
	end := len(lines)
	for end > 0 && lines[end-1] == "" {
		end--
	}
	return lines[:end], nil
}

// PipePane appends the pane's output to path. An empty path stops piping.
func (c *Client) PipePane(id PaneID, path string) error {
	if path == "" {
		return c.Write("pipe-pane", "-t", id.String())
	}
	return c.Write("pipe-pane", "-t", id.String(), "cat >> "+shellQuote(path))
}

func shellQuote(s string) string {
	out := []byte{'\''}
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' {
			out = append(out, `'\''`...)
			continue
		}
		out = append(out, s[i])
	}
	return string(append(out, '\''))
}
