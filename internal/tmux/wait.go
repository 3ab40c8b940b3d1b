package tmux

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultPollInterval is the pause between checks in WaitFor.
const DefaultPollInterval = 10 * time.Millisecond

// ErrTimeout matches every *TimeoutError.
var ErrTimeout = errors.New("timed out")

// TimeoutError is returned when a polled condition is not met in time.
type TimeoutError struct {
	Timeout time.Duration
	Last    error
}

func (e *TimeoutError) Error() string {
	if e.Last != nil {
		return fmt.Sprintf("timed out after %s: %v", e.Timeout, e.Last)
	}
	return fmt.Sprintf("timed out after %s", e.Timeout)
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

func (e *TimeoutError) Unwrap() error {
	return e.Last
}

var (
	now   = time.Now
	sleep = time.Sleep
)

// WaitFor repeatedly runs check until it reports done or timeout elapses.
// Errors from check are remembered and retried; the last one is attached to
// the timeout error.
func WaitFor(timeout, interval time.Duration, check func() (bool, error)) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	deadline := now().Add(timeout)
	var last error
	for {
		done, err := check()
		if err == nil && done {
			return nil
		}
		last = err
		if !now().Before(deadline) {
			return &TimeoutError{Timeout: timeout, Last: last}
		}
		sleep(interval)
	}
}

// WaitForPaneOutput polls the pane contents until match accepts them.
func (c *Client) WaitForPaneOutput(id PaneID, timeout time.Duration, match func([]string) bool) ([]string, error) {
	var lines []string
	err := WaitFor(timeout, DefaultPollInterval, func() (bool, error) {
		captured, err := c.CapturePane(id)
		if err != nil {
			return false, err
		}
		lines = captured
		return match(captured), nil
	})
	return lines, err
}

// ContainsLine is a WaitForPaneOutput matcher for a line containing text.
func ContainsLine(text string) func([]string) bool {
	return func(lines []string) bool {
		for _, l := range lines {
			if strings.Contains(l, text) {
				return true
			}
		}
		return false
	}
}
