package tmux

import (
	"fmt"
)

var windowFields = []string{"window_id", "window_name", "window_width", "window_height"}

func windowFromRow(r row) (WindowData, error) {
	id, err := ParseWindowID(r["window_id"])
	if err != nil {
		return WindowData{}, err
	}
	width, err := r.number("window_width")
	if err != nil {
		return WindowData{}, err
	}
	height, err := r.number("window_height")
	if err != nil {
		return WindowData{}, err
	}
	return WindowData{ID: id, Name: r["window_name"], Width: width, Height: height}, nil
}

// ListWindows returns the windows of every session.
func (c *Client) ListWindows() ([]WindowData, error) {
	return query(c, "list-windows", []string{"-a"}, windowFields, windowFromRow)
}

// SessionWindows returns the windows of one session.
func (c *Client) SessionWindows(sid SessionID) ([]WindowData, error) {
	return query(c, "list-windows", []string{"-t", sid.String()}, windowFields, windowFromRow)
}

// SessionWindow looks up a window inside a session.
func (c *Client) SessionWindow(sid SessionID, wid WindowID) (WindowData, error) {
	windows, err := c.SessionWindows(sid)
	if err != nil {
		return WindowData{}, err
	}
	for _, w := range windows {
		if w.ID == wid {
			return w, nil
		}
	}
	return WindowData{}, fmt.Errorf("window %s in session %s: %w", wid, sid, ErrNotFound)
}

// Window looks up a window on the whole server.
func (c *Client) Window(wid WindowID) (WindowData, error) {
	windows, err := c.ListWindows()
	if err != nil {
		return WindowData{}, err
	}
	for _, w := range windows {
		if w.ID == wid {
			return w, nil
		}
	}
	return WindowData{}, fmt.Errorf("window %s: %w", wid, ErrNotFound)
}

// NewWindow creates a window named name at the end of a session.
func (c *Client) NewWindow(sid SessionID, name string) (WindowData, error) {
	args := []string{"-t", sid.String() + ":", "-n", name, "-P"}
	windows, err := query(c, "new-window", args, windowFields, windowFromRow)
	if err != nil {
		return WindowData{}, err
	}
	if len(windows) == 0 {
		return WindowData{}, fmt.Errorf("no output when creating window %q in %s", name, sid)
	}
	return windows[0], nil
}
