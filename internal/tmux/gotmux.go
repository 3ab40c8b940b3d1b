package tmux

import (
	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

type tmuxClient interface {
	Command(parts ...string) (string, error)
	Close() error
}

var newTmux = func(socketPath string) (tmuxClient, error) {
	if socketPath != "" {
		return gotmux.NewTmux(socketPath)
	}
	return gotmux.DefaultTmux()
}

// ClientExecutor runs batches through a gotmuxcc client one command at a
// time. gotmuxcc owns its own control connection and framing.
type ClientExecutor struct {
	client tmuxClient
}

func NewClientExecutor(socketPath string) (*ClientExecutor, error) {
	client, err := newTmux(socketPath)
	if err != nil {
		return nil, err
	}
	return &ClientExecutor{client: client}, nil
}

// Execute implements Executor.
func (e *ClientExecutor) Execute(cmds []Command) ([]Outcome, error) {
	outcomes := make([]Outcome, len(cmds))
	for i, cmd := range cmds {
		out, err := e.client.Command(cmd.Parts()...)
		if err != nil {
			outcomes[i] = Outcome{Command: cmd, Lines: splitOutput(err.Error()), Failed: true}
			continue
		}
		outcomes[i] = Outcome{Command: cmd, Lines: splitOutput(out)}
	}
	return outcomes, nil
}

func (e *ClientExecutor) Close() error {
	return e.client.Close()
}
