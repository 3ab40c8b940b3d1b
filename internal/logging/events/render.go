package events

import "github.com/atomicstack/tmux-layout-control/internal/logging"

type RenderTracer struct{}

var Render = RenderTracer{}

// Start traces the start of a render. The returned func closes the render
// with its outcome.
func (RenderTracer) Start(session, window string) func(error) {
	fields := map[string]interface{}{"session": session, "window": window}
	logging.Trace("render.start", fields)
	return logging.Span("render.done", fields)
}

func (RenderTracer) CreateSession(ident, id string) {
	logging.Trace("render.session.create", map[string]interface{}{"ident": ident, "id": id})
}

func (RenderTracer) CreateWindow(ident, id, reason string) {
	logging.Trace("render.window.create", map[string]interface{}{"ident": ident, "id": id, "reason": reason})
}

func (RenderTracer) CreatePane(ident, id string) {
	logging.Trace("render.pane.create", map[string]interface{}{"ident": ident, "id": id})
}

func (RenderTracer) KillPane(ident, id string) {
	logging.Trace("render.pane.kill", map[string]interface{}{"ident": ident, "id": id})
}

func (RenderTracer) State(window, state string) {
	logging.Trace("render.window.state", map[string]interface{}{"window": window, "state": state})
}

func (RenderTracer) Move(pane, reference string, vertical bool) {
	logging.Trace("render.pane.move", map[string]interface{}{"pane": pane, "reference": reference, "vertical": vertical})
}

func (RenderTracer) Resize(pane string, vertical bool, size int) {
	logging.Trace("render.pane.resize", map[string]interface{}{"pane": pane, "vertical": vertical, "size": size})
}

func (RenderTracer) Failed(step string, err error) {
	logging.Trace("render.failed", map[string]interface{}{"step": step, "error": err.Error()})
}
