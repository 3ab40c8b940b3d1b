package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atomicstack/tmux-layout-control/internal/format/table"
	"github.com/atomicstack/tmux-layout-control/internal/ident"
	"github.com/atomicstack/tmux-layout-control/internal/preview"
	"github.com/atomicstack/tmux-layout-control/internal/render"
	"github.com/atomicstack/tmux-layout-control/internal/simple"
	"github.com/atomicstack/tmux-layout-control/internal/state"
	"github.com/atomicstack/tmux-layout-control/internal/theme"
	"github.com/atomicstack/tmux-layout-control/internal/tmux"
	"github.com/atomicstack/tmux-layout-control/internal/ui"
	"github.com/atomicstack/tmux-layout-control/internal/view"
	"github.com/hashicorp/go-multierror"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/term"
)

const (
	ModeRender  = "render"
	ModePreview = "preview"
	ModeUI      = "ui"
	ModeExec    = "exec"
)

const (
	defaultSession = "layout"
	defaultWidth   = 80
	defaultHeight  = 24
)

// Config describes user-provided application options.
type Config struct {
	SocketPath string
	LayoutPath string
	Session    string
	Window     string
	Mode       string
	Backend    string
	Width      int
	Height     int
	Toggle     []string
	// Args holds raw tmux command lines for exec mode.
	Args []string
}

var (
	resolveSocket = tmux.ResolveSocketPath
	startServer   = tmux.StartServer
	openClient    = tmux.Open
	terminalSize  = func() (int, int, error) {
		return term.GetSize(int(os.Stdout.Fd()))
	}
	runProgram = func(model tea.Model) error {
		_, err := tea.NewProgram(model).Run()
		return err
	}
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run dispatches to the configured mode.
func Run(cfg Config) error {
	if cfg.Mode == ModeExec {
		return runExec(cfg)
	}
	spec, err := loadLayout(cfg)
	if err != nil {
		return err
	}
	if cfg.Mode == ModePreview {
		return runPreview(cfg, spec)
	}
	client, err := connect(cfg, spec.Session)
	if err != nil {
		return err
	}
	defer client.Close()

	cwd, _ := os.Getwd()
	renderer := render.New[simple.Layout, simple.Pane](client, state.NewViews(), cwd)
	session, window := ident.Ensure(spec.Session), ident.Ensure(spec.Window)
	apply := func(tree simple.Tree) error {
		return renderer.Render(session, window, tree)
	}
	if err := apply(spec.Tree); err != nil {
		return err
	}
	switch cfg.Mode {
	case "", ModeRender:
		return printBindings(renderer, window)
	case ModeUI:
		title := fmt.Sprintf("%s:%s", spec.Session, spec.Window)
		err := runProgram(ui.NewModel(title, spec.Tree, apply, cfg.Width, cfg.Height))
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	default:
		return fmt.Errorf("unknown mode %q", cfg.Mode)
	}
}

// loadLayout reads the layout file, applies flag overrides and the requested toggles.
func loadLayout(cfg Config) (simple.Spec, error) {
	if cfg.LayoutPath == "" {
		return simple.Spec{}, errors.New("no layout file given (use --layout)")
	}
	spec, err := simple.LoadFile(cfg.LayoutPath)
	if err != nil {
		return simple.Spec{}, fmt.Errorf("load layout: %w", err)
	}
	if cfg.Session != "" {
		spec.Session = cfg.Session
	}
	if spec.Session == "" {
		spec.Session = defaultSession
	}
	if cfg.Window != "" {
		spec.Window = cfg.Window
	}
	for _, name := range cfg.Toggle {
		id, err := ResolvePane(spec.Tree, name)
		if err != nil {
			return simple.Spec{}, err
		}
		if spec.Tree, err = view.TogglePane(spec.Tree, id); err != nil {
			return simple.Spec{}, err
		}
	}
	return spec, nil
}

// ResolvePane finds the pane named by query: an exact identity wins, then the
// closest fuzzy match.
func ResolvePane(tree simple.Tree, query string) (ident.Ident, error) {
	panes := view.Panes(tree)
	names := make([]string, len(panes))
	byName := make(map[string]ident.Ident, len(panes))
	for i, p := range panes {
		names[i] = p.ID.String()
		byName[names[i]] = p.ID
	}
	if id, ok := byName[query]; ok {
		return id, nil
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	if len(ranks) == 0 {
		return ident.Ident{}, fmt.Errorf("no pane matches %q", query)
	}
	sort.Sort(ranks)
	return byName[ranks[0].Target], nil
}

func connect(cfg Config, session string) (*tmux.Client, error) {
	socketPath, err := resolveSocket(cfg.SocketPath)
	if err != nil {
		return nil, fmt.Errorf("resolve socket path: %w", err)
	}
	if err := startServer(socketPath, session); err != nil {
		return nil, err
	}
	return openClient(context.Background(), cfg.Backend, socketPath)
}

func runPreview(cfg Config, spec simple.Spec) error {
	width, height := cfg.Width, cfg.Height
	if width == 0 || height == 0 {
		w, h, err := terminalSize()
		if err != nil {
			w, h = defaultWidth, defaultHeight
		}
		if width == 0 {
			width = w
		}
		if height == 0 {
			height = h
		}
	}
	title := fmt.Sprintf("%s:%s", spec.Session, spec.Window)
	_, err := lipgloss.Fprintln(stdout, preview.Render(theme.Default(), title, spec.Tree, width, height))
	return err
}

var bindingColumns = []table.Column{
	{Title: "PANE"},
	{Title: "ID"},
	{Title: "SIZE", Align: table.AlignRight},
	{Title: "PLACED"},
}

// printBindings lists the rendered panes with their native ids and sizes.
func printBindings(r *render.Renderer[simple.Layout, simple.Pane], window ident.Ident) error {
	bindings, err := r.Bindings(window)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(bindings))
	for _, b := range bindings {
		placed := "-"
		if p := b.Placement; p != nil {
			dir := "right of"
			if p.Vertical {
				dir = "below"
			}
			placed = fmt.Sprintf("%s %s", dir, p.Reference)
		}
		rows = append(rows, []string{b.Ident.String(), b.ID.String(), fmt.Sprintf("%dx%d", b.Width, b.Height), placed})
	}
	for _, line := range table.Render(bindingColumns, rows) {
		fmt.Fprintln(stdout, line)
	}
	return nil
}

// runExec sends each argument as one tmux command line in a single batch and
// prints the replies.
func runExec(cfg Config) error {
	cmds := make([]tmux.Command, 0, len(cfg.Args))
	for _, line := range cfg.Args {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmds = append(cmds, tmux.Cmd(fields[0], fields[1:]...))
	}
	if len(cmds) == 0 {
		return errors.New("exec mode needs tmux commands after --")
	}
	client, err := connect(cfg, defaultSession)
	if err != nil {
		return err
	}
	defer client.Close()
	outcomes, err := client.Run(cmds...)
	if err != nil {
		return err
	}
	var result *multierror.Error
	for _, o := range outcomes {
		if err := o.Err(); err != nil {
			result = multierror.Append(result, err)
			fmt.Fprintln(stderr, err)
			continue
		}
		for _, line := range o.Lines {
			fmt.Fprintln(stdout, line)
		}
	}
	return result.ErrorOrNil()
}
