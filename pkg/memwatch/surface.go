package memwatch

// Geometry is the size of the terminal in character cells.
type Geometry struct {
	Cols int
	Rows int
}

// Layout tells a surface how to split the terminal. The watch panel sits
// on the right edge, the log panel fills the columns to its left.
type Layout struct {
	Geometry Geometry

	PanelWidth  int
	PanelHeight int
	LogWidth    int
	LogHeight   int

	// AddressWidth is the width of the address+label column, so the
	// surface can style the columns differently.
	AddressWidth int

	// Info is shown in the surface's status line, if it has one.
	Info []string
}

// Panel is the bordered watch panel. Row 0 and column 0 are the border;
// content starts at (1, 1).
type Panel interface {
	// Clear blanks the panel contents. The border is redrawn by the
	// surface on every flush.
	Clear()
	// WriteAt places text at the given cell, clipping at the panel edge.
	WriteAt(row, col int, text string)
	// Flush repaints the panel with everything written since the last
	// flush.
	Flush() error
}

// LogSink is the free-scrolling log panel.
type LogSink interface {
	// Append adds text verbatim. No newline is implied.
	Append(text string)
	// Flush repaints the log panel.
	Flush() error
}

// Surface is the drawing backend. The Watcher never retries a failed
// surface call.
type Surface interface {
	// Geometry reports the terminal size before anything is drawn.
	Geometry() (Geometry, error)
	// Open takes over the terminal and returns the two panels. On error
	// the surface must release anything it acquired.
	Open(layout Layout) (Panel, LogSink, error)
	// Close gives the terminal back.
	Close() error
}
