package events

import "github.com/atomicstack/tmux-layout-control/internal/logging"

type ControlTracer struct{}

var Control = ControlTracer{}

func (ControlTracer) Batch(lines []string) {
	logging.Trace("control.batch", map[string]interface{}{"commands": lines})
}

func (ControlTracer) Fatal(lines, stderr []string) {
	logging.Trace("control.fatal", map[string]interface{}{"commands": lines, "stderr": stderr})
}
