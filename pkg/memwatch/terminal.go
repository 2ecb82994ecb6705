package memwatch

import (
	"os"

	"github.com/Mr-Dark-debug/memwatch/internal/tui"
)

// TerminalOptions configures the default terminal surface.
type TerminalOptions struct {
	// Output is the terminal to draw on. Defaults to os.Stdout.
	Output *os.File
	// Scrollback is the number of log panel lines kept (default 1000).
	Scrollback int
	// Timestamps prefixes every log panel line with HH:MM:SS.mmm.
	Timestamps bool
}

// terminalSurface adapts the bubbletea terminal to Surface.
type terminalSurface struct {
	term *tui.Terminal
}

// NewTerminalSurface returns the Surface used when no other is given:
// the watch panel and log panel drawn full-screen on a terminal.
func NewTerminalSurface(opts TerminalOptions) Surface {
	return &terminalSurface{term: tui.NewTerminal(tui.Config{
		Output:     opts.Output,
		Scrollback: opts.Scrollback,
		Timestamps: opts.Timestamps,
	})}
}

func (s *terminalSurface) Geometry() (Geometry, error) {
	cols, rows, err := s.term.Size()
	if err != nil {
		return Geometry{}, err
	}
	return Geometry{Cols: cols, Rows: rows}, nil
}

func (s *terminalSurface) Open(layout Layout) (Panel, LogSink, error) {
	panel, sink, err := s.term.Open(tui.Layout{
		PanelWidth:   layout.PanelWidth,
		PanelHeight:  layout.PanelHeight,
		LogWidth:     layout.LogWidth,
		LogHeight:    layout.LogHeight,
		AddressWidth: layout.AddressWidth,
		Info:         layout.Info,
	})
	if err != nil {
		// Returning typed nil pointers would make the interfaces non-nil.
		return nil, nil, err
	}
	return panel, sink, nil
}

func (s *terminalSurface) Close() error {
	return s.term.Close()
}
