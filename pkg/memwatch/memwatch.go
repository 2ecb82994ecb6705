package memwatch

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unsafe"

	"github.com/charmbracelet/log"
)

// Init failures. Both leave the Watcher uninitialized.
var (
	// ErrTerminalTooSmall means the terminal cannot hold the watch panel
	// plus at least one log column, or has fewer than 5 rows. The panel
	// is PanelWidth(p) = 2p+34 columns wide for p-byte pointers, so Init
	// needs more than 50 columns on a 64-bit host and more than 42 on a
	// 32-bit one.
	ErrTerminalTooSmall = errors.New("memwatch: terminal too small")
	ErrPointerTooNarrow = errors.New("memwatch: pointer width unsupported")
)

// DefaultTitle is written on the first content row of the watch panel.
const DefaultTitle = "Memory Window:"

const (
	minPointerWidth = 4

	// Rows taken by the panel border, the title line and the
	// terminal's last line, which the panels leave free.
	reservedRows = 4

	panelBorderWidth = 2
)

// State is the lifecycle stage of a Watcher.
type State int

const (
	StateUninitialized State = iota
	StateReady
	StateTornDown
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateTornDown:
		return "torn down"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Option configures a Watcher created with New.
type Option func(*Watcher)

// WithSurface replaces the terminal surface, typically with a fake in
// tests or an alternative backend.
func WithSurface(s Surface) Option {
	return func(w *Watcher) {
		w.surface = s
	}
}

// WithLogger sets the diagnostic logger. Diagnostics never go to the
// panels; point the logger at a file while the terminal is taken over.
func WithLogger(l *log.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithTitle changes the watch panel heading.
func WithTitle(title string) Option {
	return func(w *Watcher) {
		w.title = title
	}
}

// withHost overrides the probed host properties. Tests use it to
// simulate other machines.
func withHost(ptrWidth int, order binary.ByteOrder) Option {
	return func(w *Watcher) {
		w.ptrWidth = ptrWidth
		w.order = order
	}
}

// Watcher owns one watch table and the surface it is drawn on.
//
// A Watcher is not safe for concurrent use. The host serializes every
// call, e.g. by making them all from one goroutine. Only one Watcher per
// process can hold the real terminal at a time.
type Watcher struct {
	surface Surface
	logger  *log.Logger
	title   string

	ptrWidth int
	order    binary.ByteOrder
	renderer *Renderer

	state  State
	table  *Table
	panel  Panel
	sink   LogSink
	layout Layout
}

// New returns an uninitialized Watcher. Call Init before anything else;
// until then every operation is a no-op.
func New(opts ...Option) *Watcher {
	w := &Watcher{
		logger:   log.New(io.Discard),
		title:    DefaultTitle,
		ptrWidth: hostPointerWidth,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.surface == nil {
		w.surface = NewTerminalSurface(TerminalOptions{})
	}
	return w
}

// PanelWidth is the width of the watch panel for a given pointer width:
// the address+label column, the widest value and the border.
func PanelWidth(ptrWidth int) int {
	return 2 + 2*ptrWidth + labelWidth + valueColumnWidth + panelBorderWidth
}

// Init sizes the watch table from the terminal, takes over the terminal
// and draws the empty panel. Calling Init on a ready Watcher does
// nothing. On failure no table is allocated and the terminal is left as
// it was.
func (w *Watcher) Init() error {
	if w.state == StateReady {
		return nil
	}

	if w.ptrWidth < minPointerWidth {
		err := fmt.Errorf("%w: %d-byte pointers, need at least %d", ErrPointerTooNarrow, w.ptrWidth, minPointerWidth)
		w.logger.Warn("init failed", "err", err)
		return err
	}

	if w.order == nil {
		w.order = ProbeByteOrder()
	}

	geo, err := w.surface.Geometry()
	if err != nil {
		w.logger.Warn("init failed", "err", err)
		return fmt.Errorf("querying terminal geometry: %w", err)
	}

	layout, capacity, err := w.plan(geo)
	if err != nil {
		w.logger.Warn("init failed", "err", err, "cols", geo.Cols, "rows", geo.Rows)
		return err
	}

	table, err := NewTable(capacity)
	if err != nil {
		return err
	}

	panel, sink, err := w.surface.Open(layout)
	if err != nil {
		w.logger.Warn("init failed", "err", err)
		return fmt.Errorf("opening display surface: %w", err)
	}

	w.renderer = NewRenderer(w.order, w.ptrWidth)
	w.table = table
	w.panel = panel
	w.sink = sink
	w.layout = layout
	w.state = StateReady

	w.logger.Debug("watcher ready",
		"capacity", capacity,
		"cols", geo.Cols,
		"rows", geo.Rows,
		"pointer_width", w.ptrWidth,
		"byte_order", byteOrderName(w.order),
	)

	w.Refresh()
	return nil
}

// plan derives the panel layout and table capacity from the terminal size.
func (w *Watcher) plan(geo Geometry) (Layout, int, error) {
	panelWidth := PanelWidth(w.ptrWidth)
	if panelWidth >= geo.Cols {
		return Layout{}, 0, fmt.Errorf("%w: watch panel is %d columns wide, terminal has %d",
			ErrTerminalTooSmall, panelWidth, geo.Cols)
	}

	capacity := geo.Rows - reservedRows
	if capacity < 1 {
		return Layout{}, 0, fmt.Errorf("%w: need at least %d rows, terminal has %d",
			ErrTerminalTooSmall, reservedRows+1, geo.Rows)
	}

	layout := Layout{
		Geometry:     geo,
		PanelWidth:   panelWidth,
		PanelHeight:  geo.Rows - 1,
		LogWidth:     geo.Cols - panelWidth - 1,
		LogHeight:    geo.Rows - 1,
		AddressWidth: 2 + 2*w.ptrWidth + labelWidth,
		Info: []string{
			fmt.Sprintf("%d-bit", w.ptrWidth*8),
			byteOrderName(w.order),
			fmt.Sprintf("%d rows", capacity),
		},
	}
	return layout, capacity, nil
}

// End releases the table and gives the terminal back. The Watcher can be
// initialized again afterwards.
func (w *Watcher) End() {
	if w.state != StateReady {
		return
	}

	w.table.Release()
	w.table = nil
	w.panel = nil
	w.sink = nil
	w.state = StateTornDown

	if err := w.surface.Close(); err != nil {
		w.logger.Warn("closing display surface", "err", err)
	}
	w.logger.Debug("watcher torn down")
}

// State returns the lifecycle stage.
func (w *Watcher) State() State {
	return w.state
}

// Capacity returns how many rows can be watched. It is zero unless the
// Watcher is ready.
func (w *Watcher) Capacity() int {
	if w.state != StateReady {
		return 0
	}
	return w.table.Capacity()
}

// PointerWidth returns the pointer width in bytes the Watcher renders for.
func (w *Watcher) PointerWidth() int {
	return w.ptrWidth
}

// ByteOrder returns the byte order found by the startup probe, or nil
// before the first Init.
func (w *Watcher) ByteOrder() binary.ByteOrder {
	return w.order
}

// Watch shows the memory at addr, read as tag, on row. Rows outside the
// table and tags outside the defined set are ignored.
//
// addr must stay readable for tag.Width() bytes until the row is
// unwatched or the Watcher ends.
func (w *Watcher) Watch(addr unsafe.Pointer, row int, tag TypeTag) {
	if w.state != StateReady {
		return
	}
	if !tag.Valid() {
		w.logger.Debug("ignoring unknown type tag", "row", row, "tag", uint8(tag))
		return
	}
	if !w.table.Set(row, addr, tag) {
		w.logger.Debug("ignoring out-of-range row", "row", row, "capacity", w.table.Capacity())
	}
}

// WatchVar watches a typed Go pointer, inferring the tag with TagOf. It
// reports whether the pointer type was supported.
func (w *Watcher) WatchVar(row int, ptr any) bool {
	addr, tag, ok := TagOf(ptr)
	if !ok {
		return false
	}
	w.Watch(addr, row, tag)
	return true
}

// Unwatch empties row.
func (w *Watcher) Unwatch(row int) {
	if w.state != StateReady {
		return
	}
	if !w.table.Clear(row) {
		w.logger.Debug("ignoring out-of-range row", "row", row, "capacity", w.table.Capacity())
	}
}

// Slot returns the current contents of row.
func (w *Watcher) Slot(row int) (Slot, bool) {
	if w.state != StateReady {
		return Slot{}, false
	}
	return w.table.Slot(row)
}

// Refresh redraws every watched row with the current memory contents.
func (w *Watcher) Refresh() {
	if w.state != StateReady {
		return
	}

	w.panel.Clear()
	w.panel.WriteAt(1, 1, w.title)

	valueCol := 1 + w.renderer.AddressColumnWidth()
	for row, s := range w.table.All() {
		if s.Empty() {
			continue
		}
		addressColumn, valueColumn := w.renderer.Render(s)
		w.panel.WriteAt(row+2, 1, addressColumn)
		w.panel.WriteAt(row+2, valueCol, " "+valueColumn)
	}

	if err := w.panel.Flush(); err != nil {
		w.logger.Warn("watch panel flush failed", "err", err)
	}
}

// Log appends text to the log panel. No newline is added.
func (w *Watcher) Log(text string) {
	if w.state != StateReady {
		return
	}
	w.sink.Append(text)
	if err := w.sink.Flush(); err != nil {
		w.logger.Warn("log panel flush failed", "err", err)
	}
}

// Logf formats like fmt.Printf and appends the result to the log panel.
func (w *Watcher) Logf(format string, args ...any) {
	if w.state != StateReady {
		return
	}
	w.Log(fmt.Sprintf(format, args...))
}

// Write appends p to the log panel so the Watcher can back any
// io.Writer-based logger. It never fails; while the Watcher is not ready
// the bytes are dropped.
func (w *Watcher) Write(p []byte) (int, error) {
	w.Log(string(p))
	return len(p), nil
}
