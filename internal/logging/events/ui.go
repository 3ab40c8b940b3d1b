package events

import "github.com/atomicstack/tmux-layout-control/internal/logging"

type UITracer struct{}

var UI = UITracer{}

func (UITracer) Toggle(pane string, open bool) {
	logging.Trace("ui.toggle", map[string]interface{}{"pane": pane, "open": open})
}

func (UITracer) Filter(query string, matches int) {
	logging.Trace("ui.filter", map[string]interface{}{"query": query, "matches": matches})
}

func (UITracer) Apply(panes int, err error) {
	payload := map[string]interface{}{"panes": panes}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("ui.apply", payload)
}
