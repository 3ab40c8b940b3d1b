package tmux

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound reports a native entity that tmux does not know about.
var ErrNotFound = errors.New("tmux entity not found")

// Command is one tmux command line: a verb and its ordered arguments.
type Command struct {
	Verb string
	Args []string
}

// Cmd builds a Command.
func Cmd(verb string, args ...string) Command {
	return Command{Verb: verb, Args: args}
}

// Parts returns the verb followed by the arguments.
func (c Command) Parts() []string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Verb)
	return append(parts, c.Args...)
}

// Line renders the command as a single control-mode input line.
func (c Command) Line() string {
	parts := c.Parts()
	for i, p := range parts {
		parts[i] = quoteArg(p)
	}
	return strings.Join(parts, " ")
}

func (c Command) String() string {
	return c.Line()
}

var doubleQuoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "\n", `\n`, "\r", `\r`)

func quoteArg(arg string) string {
	if arg == "" {
		return "''"
	}
	if !strings.ContainsAny(arg, " \t\r\n\"'#;$~{}\\") {
		return arg
	}
	if !strings.ContainsAny(arg, "'\r\n") {
		return "'" + arg + "'"
	}
	return `"` + doubleQuoteEscaper.Replace(arg) + `"`
}

// Outcome is the reply to a single command of a batch.
type Outcome struct {
	Command Command
	Lines   []string
	Failed  bool
}

// Err returns a *CommandError for failed outcomes and nil otherwise.
func (o Outcome) Err() error {
	if !o.Failed {
		return nil
	}
	return &CommandError{Command: o.Command, Lines: o.Lines}
}

// CommandError is an individual command answered with an error block.
type CommandError struct {
	Command Command
	Lines   []string
}

func (e *CommandError) Error() string {
	msg := strings.Join(e.Lines, "; ")
	if msg == "" {
		msg = "no output"
	}
	return fmt.Sprintf("tmux %s failed: %s", e.Command.Line(), msg)
}

// FatalError is a batch for which the control connection produced no framed reply.
type FatalError struct {
	Commands []Command
	Stderr   []string
}

func (e *FatalError) Error() string {
	verbs := make([]string, len(e.Commands))
	for i, c := range e.Commands {
		verbs[i] = c.Verb
	}
	msg := strings.Join(e.Stderr, "; ")
	if msg == "" {
		msg = "no output"
	}
	return fmt.Sprintf("tmux control connection failed running [%s]: %s", strings.Join(verbs, ", "), msg)
}

// Executor runs a batch of commands. Implementations return one outcome per
// command in submission order, or a *FatalError for the whole batch.
type Executor interface {
	Execute(cmds []Command) ([]Outcome, error)
}

// pairOutcomes zips framed chunks with the commands that produced them.
// Commands left without a chunk are reported as failed with the stderr text.
func pairOutcomes(cmds []Command, chunks []Chunk, stderr []string) ([]Outcome, error) {
	if len(cmds) > 0 && len(chunks) == 0 {
		return nil, &FatalError{Commands: cmds, Stderr: stderr}
	}
	outcomes := make([]Outcome, len(cmds))
	for i, cmd := range cmds {
		if i < len(chunks) {
			outcomes[i] = Outcome{Command: cmd, Lines: chunks[i].Lines, Failed: chunks[i].Failed}
			continue
		}
		lines := append([]string{"no reply from control connection"}, stderr...)
		outcomes[i] = Outcome{Command: cmd, Lines: lines, Failed: true}
	}
	return outcomes, nil
}

func splitOutput(out string) []string {
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}
