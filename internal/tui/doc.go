// Package tui implements the memwatch terminal surface.
//
// It is built with Charmbracelet's BubbleTea, Lipgloss and Bubbles
// libraries. The host never talks to bubbletea directly: it writes into
// a PanelWriter and a LogWriter, and each Flush hands a snapshot to the
// running program with Program.Send.
//
// Component architecture:
//
//	surface.go  Terminal lifecycle, terminal claim, writers
//	model.go    root model, layout, Update/View
//	grid.go     watch panel character grid
//	logpane.go  log panel line assembly and scrollback
//	footer.go   status line
//	theme.go    centralized color + style definitions
//	helpers.go  padding and splitting
package tui
