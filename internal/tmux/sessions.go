package tmux

import (
	"fmt"
)

var sessionFields = []string{"session_id", "session_name"}

func sessionFromRow(r row) (SessionData, error) {
	id, err := ParseSessionID(r["session_id"])
	if err != nil {
		return SessionData{}, err
	}
	return SessionData{ID: id, Name: r["session_name"]}, nil
}

// ListSessions returns every session on the server.
func (c *Client) ListSessions() ([]SessionData, error) {
	return query(c, "list-sessions", nil, sessionFields, sessionFromRow)
}

// SessionExists reports whether a session with the given id is alive.
func (c *Client) SessionExists(id SessionID) (bool, error) {
	sessions, err := c.ListSessions()
	if err != nil {
		return false, err
	}
	for _, s := range sessions {
		if s.ID == id {
			return true, nil
		}
	}
	return false, nil
}

// NewSession creates a detached session and returns its record.
func (c *Client) NewSession(name string) (SessionData, error) {
	sessions, err := query(c, "new-session", []string{"-d", "-s", name, "-P"}, sessionFields, sessionFromRow)
	if err != nil {
		return SessionData{}, err
	}
	if len(sessions) == 0 {
		return SessionData{}, fmt.Errorf("no output when creating session %q", name)
	}
	return sessions[0], nil
}

// KillServer terminates the tmux server.
func (c *Client) KillServer() error {
	return c.Write("kill-server")
}
