package ui

import (
	"fmt"
	"reflect"
	"unicode"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/atomicstack/tmux-layout-control/internal/logging/events"
	"github.com/atomicstack/tmux-layout-control/internal/simple"
	"github.com/atomicstack/tmux-layout-control/internal/theme"
	uistate "github.com/atomicstack/tmux-layout-control/internal/ui/state"
	"github.com/atomicstack/tmux-layout-control/internal/view"
)

var styles = theme.Default()

// ApplyFunc renders tree onto the target window.
type ApplyFunc func(tree simple.Tree) error

type msgHandler func(tea.Msg) tea.Cmd

type appliedMsg struct {
	open int
	err  error
}

// Model implements the Bubble Tea model for the pane toggler.
type Model struct {
	title       string
	tree        simple.Tree
	apply       ApplyFunc
	level       *uistate.Level
	keys        keyMap
	help        help.Model
	width       int
	height      int
	showPreview bool
	applying    bool
	dirty       bool
	errMsg      string
	infoMsg     string

	handlers map[reflect.Type]msgHandler
}

// NewModel builds a toggler for tree. apply is called after every toggle.
func NewModel(title string, tree simple.Tree, apply ApplyFunc, width, height int) *Model {
	m := &Model{
		title:  title,
		tree:   tree,
		apply:  apply,
		level:  uistate.NewLevel(paneItems(tree)),
		keys:   defaultKeys,
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.registerHandlers()
	m.syncViewport()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

// Tree returns the tree with every toggle applied so far.
func (m *Model) Tree() simple.Tree {
	return m.tree
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyPressMsg{}):   m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(appliedMsg{}):        m.handleAppliedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	k := msg.(tea.KeyPressMsg)
	switch {
	case key.Matches(k, m.keys.Quit):
		return tea.Quit
	case key.Matches(k, m.keys.Up):
		m.level.MoveCursor(-1)
	case key.Matches(k, m.keys.Down):
		m.level.MoveCursor(1)
	case key.Matches(k, m.keys.Toggle):
		return m.toggleCurrent()
	case key.Matches(k, m.keys.Preview):
		m.showPreview = !m.showPreview
	case key.Matches(k, m.keys.Clear):
		m.level.SetFilter("", 0)
		m.filterChanged()
	case key.Matches(k, m.keys.DeleteWord):
		if m.level.DeleteFilterWordBackward() {
			m.filterChanged()
		}
	case key.Matches(k, m.keys.Backspace):
		if m.level.DeleteFilterRuneBackward() {
			m.filterChanged()
		}
	default:
		if printable(k.Text) && m.level.InsertFilterText(k.Text) {
			m.filterChanged()
		}
	}
	m.syncViewport()
	return nil
}

func printable(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

func (m *Model) filterChanged() {
	m.errMsg = ""
	events.UI.Filter(m.level.Filter, len(m.level.Items))
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size := msg.(tea.WindowSizeMsg)
	m.width = size.Width
	m.height = size.Height
	m.syncViewport()
	return nil
}

func (m *Model) toggleCurrent() tea.Cmd {
	item, ok := m.level.Current()
	if !ok {
		return nil
	}
	tree, err := view.TogglePane(m.tree, item.Ident)
	if err != nil {
		m.errMsg = err.Error()
		return nil
	}
	m.tree = tree
	m.level.UpdateItems(paneItems(tree))
	m.syncViewport()
	if pane, ok := view.FindIdent(tree, item.Ident); ok {
		events.UI.Toggle(item.Label, pane.IsOpen)
	}
	m.dirty = true
	return m.applyCmd()
}

// applyCmd starts rendering the current tree unless a render is in flight.
func (m *Model) applyCmd() tea.Cmd {
	if m.applying || !m.dirty || m.apply == nil {
		return nil
	}
	m.applying, m.dirty = true, false
	tree, apply := m.tree, m.apply
	return func() tea.Msg {
		return appliedMsg{open: openCount(tree), err: apply(tree)}
	}
}

func (m *Model) handleAppliedMsg(msg tea.Msg) tea.Cmd {
	res := msg.(appliedMsg)
	m.applying = false
	events.UI.Apply(res.open, res.err)
	if res.err != nil {
		m.errMsg = res.err.Error()
		m.infoMsg = ""
	} else {
		m.errMsg = ""
		m.infoMsg = fmt.Sprintf("%d panes open", res.open)
	}
	return m.applyCmd()
}

func (m *Model) syncViewport() {
	m.level.EnsureCursorVisible(m.listHeight())
}
