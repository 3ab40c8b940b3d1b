package tmux

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/atomicstack/tmux-layout-control/internal/logging/events"
)

// Chunk is one framed reply block.
type Chunk struct {
	Lines  []string
	Failed bool
}

// Framer splits a control-mode line stream into reply blocks. A block opens
// with %begin and closes with %end or %error carrying the same time and
// command number. Lines outside a block are notifications and are dropped.
type Framer struct {
	open bool
	tag  string
	body []string
}

// Feed consumes one line and returns the completed chunk when the line
// terminates a block.
func (f *Framer) Feed(line string) (Chunk, bool) {
	line = strings.TrimSuffix(line, "\r")
	if !f.open {
		if tag, ok := marker(line, "%begin"); ok {
			f.open = true
			f.tag = tag
			f.body = nil
		}
		return Chunk{}, false
	}
	for _, term := range []string{"%end", "%error"} {
		if tag, ok := marker(line, term); ok && tag == f.tag {
			chunk := Chunk{Lines: f.body, Failed: term == "%error"}
			f.open = false
			f.tag = ""
			f.body = nil
			return chunk, true
		}
	}
	f.body = append(f.body, line)
	return Chunk{}, false
}

// marker reports whether line is the given guard line and returns its
// "time number" tag. The trailing flags field is not part of the tag.
func marker(line, name string) (string, bool) {
	if line == name {
		return "", true
	}
	if !strings.HasPrefix(line, name+" ") {
		return "", false
	}
	fields := strings.Fields(line[len(name)+1:])
	if len(fields) > 2 {
		fields = fields[:2]
	}
	return strings.Join(fields, " "), true
}

var errConnClosed = errors.New("tmux control connection closed")

// ControlConn is a persistent `tmux -C attach-session` client. Batches are
// written as a single newline-joined message and the reply stream is read
// until every command has been answered.
type ControlConn struct {
	mu     sync.Mutex
	stdin  io.WriteCloser
	lines  *bufio.Scanner
	framer Framer
	stderr func() []string
	wait   func() error
	once   sync.Once
	closed bool
}

// controlArgs attaches in control mode. -u keeps tmux from replacing the tab
// separators of listings with '_' when the locale is not UTF-8.
func controlArgs(socketPath string) []string {
	return append(baseArgs(socketPath), "-u", "-C", "attach-session")
}

var startControl = func(socketPath string) (io.WriteCloser, io.Reader, func() []string, func() error, error) {
	cmd := exec.Command("tmux", controlArgs(socketPath)...)
	cmd.Env = controlEnv(os.Environ())
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	stderr := &lockedBuffer{}
	cmd.Stderr = stderr
	if err := cmd.Start(); err != nil {
		return nil, nil, nil, nil, err
	}
	return stdin, stdout, stderr.Lines, cmd.Wait, nil
}

// Dial attaches a control client to the server at socketPath and consumes
// the reply to the implicit attach command. ctx bounds the attach only; the
// client lives until Close.
func Dial(ctx context.Context, socketPath string) (*ControlConn, error) {
	stdin, stdout, stderr, wait, err := startControl(socketPath)
	if err != nil {
		return nil, err
	}
	conn := newControlConn(stdin, stdout, stderr, wait)
	done := make(chan error, 1)
	go func() { done <- conn.handshake() }()
	select {
	case err := <-done:
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		return conn, nil
	case <-ctx.Done():
		// closing stdin makes the client exit, which ends the handshake
		_ = stdin.Close()
		<-done
		_ = conn.Close()
		return nil, fmt.Errorf("attach control client: %w", ctx.Err())
	}
}

func newControlConn(stdin io.WriteCloser, stdout io.Reader, stderr func() []string, wait func() error) *ControlConn {
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	if stderr == nil {
		stderr = func() []string { return nil }
	}
	if wait == nil {
		wait = func() error { return nil }
	}
	return &ControlConn{stdin: stdin, lines: scanner, stderr: stderr, wait: wait}
}

func (c *ControlConn) handshake() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.lines.Scan() {
		if _, ok := c.framer.Feed(c.lines.Text()); ok {
			return nil
		}
	}
	c.finish()
	stderr := c.stderr()
	events.Control.Fatal(nil, stderr)
	return &FatalError{Stderr: stderr}
}

// Execute implements Executor.
func (c *ControlConn) Execute(cmds []Command) ([]Outcome, error) {
	if len(cmds) == 0 {
		return nil, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, &FatalError{Commands: cmds, Stderr: []string{errConnClosed.Error()}}
	}
	var buf strings.Builder
	for _, cmd := range cmds {
		buf.WriteString(cmd.Line())
		buf.WriteByte('\n')
	}
	events.Control.Batch(commandLines(cmds))
	if _, err := io.WriteString(c.stdin, buf.String()); err != nil {
		c.finish()
		return nil, &FatalError{Commands: cmds, Stderr: append(c.stderr(), err.Error())}
	}
	chunks := make([]Chunk, 0, len(cmds))
	for len(chunks) < len(cmds) && c.lines.Scan() {
		if chunk, ok := c.framer.Feed(c.lines.Text()); ok {
			chunks = append(chunks, chunk)
		}
	}
	var stderr []string
	if len(chunks) < len(cmds) {
		c.finish()
		stderr = c.stderr()
		events.Control.Fatal(commandLines(cmds), stderr)
	}
	return pairOutcomes(cmds, chunks, stderr)
}

// Close detaches the control client.
func (c *ControlConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.stdin.Close()
	return c.finish()
}

func (c *ControlConn) finish() error {
	var err error
	c.once.Do(func() {
		c.closed = true
		err = c.wait()
	})
	return err
}

func commandLines(cmds []Command) []string {
	lines := make([]string, len(cmds))
	for i, cmd := range cmds {
		lines[i] = cmd.Line()
	}
	return lines
}

// controlEnv drops TMUX so that a control client can attach from inside a
// tmux pane.
func controlEnv(environ []string) []string {
	env := make([]string, 0, len(environ))
	for _, entry := range environ {
		if strings.HasPrefix(entry, "TMUX=") {
			continue
		}
		env = append(env, entry)
	}
	return env
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return splitOutput(b.buf.String())
}
