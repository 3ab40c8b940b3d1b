// Package ui contains the Bubble Tea program that toggles panes of a layout.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Toggling a pane replaces the model's tree with view.TogglePane and
//     schedules an apply command that re-renders the window. Only one apply
//     runs at a time; toggles made meanwhile are applied once it finishes.
//
// State ownership:
//   - The pane list, filter and viewport live in internal/ui/state.Level.
//   - The binding table is owned by the caller's render function, so the
//     window keeps its panes across re-renders.
package ui
