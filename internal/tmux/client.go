package tmux

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"
)

const (
	BackendControl = "control"
	BackendGotmux  = "gotmuxcc"
)

// Client issues typed tmux commands over an Executor.
type Client struct {
	exec   Executor
	closer io.Closer
}

// NewClient wraps an executor. The client does not own it.
func NewClient(exec Executor) *Client {
	return &Client{exec: exec}
}

// Open connects to the tmux server at socketPath using the named backend.
func Open(ctx context.Context, backend, socketPath string) (*Client, error) {
	switch strings.TrimSpace(backend) {
	case "", BackendControl:
		conn, err := Dial(ctx, socketPath)
		if err != nil {
			return nil, err
		}
		return &Client{exec: conn, closer: conn}, nil
	case BackendGotmux:
		exec, err := NewClientExecutor(socketPath)
		if err != nil {
			return nil, err
		}
		return &Client{exec: exec, closer: exec}, nil
	default:
		return nil, fmt.Errorf("unknown tmux backend %q", backend)
	}
}

// Close releases the underlying connection when the client owns it.
func (c *Client) Close() error {
	if c == nil || c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

// Run executes a batch and returns every outcome.
func (c *Client) Run(cmds ...Command) ([]Outcome, error) {
	return c.exec.Execute(cmds)
}

// Read runs a single command and returns its output lines.
func (c *Client) Read(verb string, args ...string) ([]string, error) {
	outcomes, err := c.exec.Execute([]Command{Cmd(verb, args...)})
	if err != nil {
		return nil, err
	}
	if len(outcomes) != 1 {
		return nil, fmt.Errorf("tmux %s: expected 1 outcome, got %d", verb, len(outcomes))
	}
	if err := outcomes[0].Err(); err != nil {
		return nil, err
	}
	return outcomes[0].Lines, nil
}

// Write runs a single command and discards its output.
func (c *Client) Write(verb string, args ...string) error {
	_, err := c.Read(verb, args...)
	return err
}

// WriteAll runs cmds as one batch. Every failed command contributes to the
// returned error; a failure does not prevent later commands from running.
func (c *Client) WriteAll(cmds ...Command) error {
	if len(cmds) == 0 {
		return nil
	}
	outcomes, err := c.exec.Execute(cmds)
	if err != nil {
		return err
	}
	var result *multierror.Error
	for _, o := range outcomes {
		if err := o.Err(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
