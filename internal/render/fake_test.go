package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/tmux-layout-control/internal/tmux"
)

type fakeWindow struct {
	id, session   int
	name          string
	width, height int
	panes         []int
}

type fakeSession struct {
	id   int
	name string
}

// fakeServer answers the subset of tmux commands the renderer issues and
// keeps every executed command line.
type fakeServer struct {
	sessions []*fakeSession
	windows  []*fakeWindow
	next     int
	log      []string
}

func newFakeServer() *fakeServer {
	return &fakeServer{}
}

func (s *fakeServer) Execute(cmds []tmux.Command) ([]tmux.Outcome, error) {
	outcomes := make([]tmux.Outcome, len(cmds))
	for i, cmd := range cmds {
		s.log = append(s.log, cmd.Line())
		lines, err := s.run(cmd)
		if err != nil {
			outcomes[i] = tmux.Outcome{Command: cmd, Lines: []string{err.Error()}, Failed: true}
			continue
		}
		outcomes[i] = tmux.Outcome{Command: cmd, Lines: lines}
	}
	return outcomes, nil
}

func (s *fakeServer) id() int {
	s.next++
	return s.next
}

func (s *fakeServer) addSession(name string) *fakeSession {
	sess := &fakeSession{id: s.id(), name: name}
	s.sessions = append(s.sessions, sess)
	s.addWindow(sess.id, name)
	return sess
}

func (s *fakeServer) addWindow(session int, name string) *fakeWindow {
	w := &fakeWindow{id: s.id(), session: session, name: name, width: 80, height: 24}
	w.panes = []int{s.id()}
	s.windows = append(s.windows, w)
	return w
}

func (s *fakeServer) window(id int) *fakeWindow {
	for _, w := range s.windows {
		if w.id == id {
			return w
		}
	}
	return nil
}

func (s *fakeServer) paneWindow(id int) (*fakeWindow, int) {
	for _, w := range s.windows {
		for i, p := range w.panes {
			if p == id {
				return w, i
			}
		}
	}
	return nil, -1
}

func (s *fakeServer) panes(windowID int) []int {
	if w := s.window(windowID); w != nil {
		return append([]int(nil), w.panes...)
	}
	return nil
}

func (s *fakeServer) count(verb string) int {
	n := 0
	for _, line := range s.log {
		if strings.HasPrefix(line, verb+" ") || line == verb {
			n++
		}
	}
	return n
}

func flag(args []string, name string) string {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == name {
			return args[i+1]
		}
	}
	return ""
}

func hasFlag(args []string, name string) bool {
	for _, a := range args {
		if a == name {
			return true
		}
	}
	return false
}

func nativeID(s string) int {
	n, _ := strconv.Atoi(strings.TrimRight(s[1:], ":"))
	return n
}

func (s *fakeServer) run(cmd tmux.Command) ([]string, error) {
	args := cmd.Args
	format := flag(args, "-F")
	switch cmd.Verb {
	case "list-sessions":
		var lines []string
		for _, sess := range s.sessions {
			lines = append(lines, s.sessionRow(sess, format))
		}
		return lines, nil
	case "new-session":
		name := flag(args, "-s")
		for _, sess := range s.sessions {
			if sess.name == name {
				return nil, fmt.Errorf("duplicate session: %s", name)
			}
		}
		return []string{s.sessionRow(s.addSession(name), format)}, nil
	case "list-windows":
		var lines []string
		for _, w := range s.windows {
			if hasFlag(args, "-a") || w.session == nativeID(flag(args, "-t")) {
				lines = append(lines, s.windowRow(w, format))
			}
		}
		return lines, nil
	case "new-window":
		w := s.addWindow(nativeID(flag(args, "-t")), flag(args, "-n"))
		return []string{s.windowRow(w, format)}, nil
	case "list-panes":
		var lines []string
		for _, w := range s.windows {
			if hasFlag(args, "-a") || w.id == nativeID(flag(args, "-t")) {
				for _, p := range w.panes {
					lines = append(lines, s.paneRow(w, p, format))
				}
			}
		}
		return lines, nil
	case "split-window":
		w := s.window(nativeID(flag(args, "-t")))
		if w == nil {
			return nil, fmt.Errorf("can't find window")
		}
		p := s.id()
		w.panes = append(w.panes, p)
		return []string{s.paneRow(w, p, format)}, nil
	case "kill-pane":
		w, i := s.paneWindow(nativeID(flag(args, "-t")))
		if w == nil {
			return nil, fmt.Errorf("can't find pane")
		}
		w.panes = append(w.panes[:i], w.panes[i+1:]...)
		return nil, nil
	case "move-pane":
		src := nativeID(flag(args, "-s"))
		from, i := s.paneWindow(src)
		to, _ := s.paneWindow(nativeID(flag(args, "-t")))
		if from == nil || to == nil {
			return nil, fmt.Errorf("can't find pane")
		}
		from.panes = append(from.panes[:i], from.panes[i+1:]...)
		_, j := s.paneWindow(nativeID(flag(args, "-t")))
		to.panes = append(to.panes[:j+1], append([]int{src}, to.panes[j+1:]...)...)
		return nil, nil
	case "resize-pane":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown command: %s", cmd.Verb)
	}
}

func formatRow(format string, values map[string]string) string {
	fields := strings.Split(format, "\t")
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = values[strings.TrimSuffix(strings.TrimPrefix(f, "#{"), "}")]
	}
	return strings.Join(out, "\t")
}

func (s *fakeServer) sessionRow(sess *fakeSession, format string) string {
	return formatRow(format, map[string]string{
		"session_id":   "$" + strconv.Itoa(sess.id),
		"session_name": sess.name,
	})
}

func (s *fakeServer) windowRow(w *fakeWindow, format string) string {
	return formatRow(format, map[string]string{
		"window_id":     "@" + strconv.Itoa(w.id),
		"window_name":   w.name,
		"window_width":  strconv.Itoa(w.width),
		"window_height": strconv.Itoa(w.height),
	})
}

func (s *fakeServer) paneRow(w *fakeWindow, p int, format string) string {
	return formatRow(format, map[string]string{
		"pane_id":     "%" + strconv.Itoa(p),
		"pane_width":  strconv.Itoa(w.width),
		"pane_height": strconv.Itoa(w.height),
		"pane_top":    "0",
		"pane_left":   "0",
		"pane_pid":    strconv.Itoa(1000 + p),
		"window_id":   "@" + strconv.Itoa(w.id),
		"session_id":  "$" + strconv.Itoa(w.session),
	})
}
