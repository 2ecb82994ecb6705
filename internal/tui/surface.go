package tui

import (
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

var (
	// ErrNotTerminal is returned when the output is not a terminal.
	ErrNotTerminal = errors.New("tui: output is not a terminal")
	// ErrTerminalBusy is returned when the terminal is already taken by
	// another surface in this process.
	ErrTerminalBusy = errors.New("tui: terminal already in use")
	// ErrClosed is returned by writers whose surface has been closed.
	ErrClosed = errors.New("tui: surface closed")
)

// claimed guards the process's one terminal.
var claimed atomic.Bool

// Config holds terminal surface settings.
type Config struct {
	// Output is the terminal to draw on. Defaults to os.Stdout.
	Output *os.File
	// Scrollback is the number of log lines kept. Defaults to
	// DefaultScrollback.
	Scrollback int
	// Timestamps prefixes each log line with the time it started.
	Timestamps bool
}

// Terminal is a display surface drawn by a bubbletea program. It reads no
// input and installs no signal handlers; the host keeps both.
type Terminal struct {
	cfg Config

	// sizeFunc and isTerminal are swapped out in tests.
	sizeFunc   func(fd int) (int, int, error)
	isTerminal func(fd int) bool

	program *tea.Program
	done    chan error
	closed  atomic.Bool
}

// NewTerminal creates a surface for cfg.Output. Nothing is drawn until
// Open.
func NewTerminal(cfg Config) *Terminal {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	return &Terminal{
		cfg:        cfg,
		sizeFunc:   term.GetSize,
		isTerminal: term.IsTerminal,
	}
}

func (t *Terminal) fd() int {
	return int(t.cfg.Output.Fd())
}

// Size reports the terminal's columns and rows.
func (t *Terminal) Size() (cols, rows int, err error) {
	if !t.isTerminal(t.fd()) {
		return 0, 0, ErrNotTerminal
	}
	cols, rows, err = t.sizeFunc(t.fd())
	if err != nil {
		return 0, 0, fmt.Errorf("reading terminal size: %w", err)
	}
	return cols, rows, nil
}

// Open claims the terminal and starts the program. The returned writers
// push snapshots to it.
func (t *Terminal) Open(layout Layout) (*PanelWriter, *LogWriter, error) {
	if !t.isTerminal(t.fd()) {
		return nil, nil, ErrNotTerminal
	}
	if !claimed.CompareAndSwap(false, true) {
		return nil, nil, ErrTerminalBusy
	}

	model := NewModel(layout, t.cfg)
	t.program = tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithOutput(t.cfg.Output),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	t.done = make(chan error, 1)
	t.closed.Store(false)

	go func(p *tea.Program, done chan<- error) {
		_, err := p.Run()
		done <- err
	}(t.program, t.done)

	return newPanelWriter(t, layout), &LogWriter{term: t}, nil
}

// send delivers msg to the running program. tea.Program.Send blocks until
// the program reads it or has exited.
func (t *Terminal) send(msg tea.Msg) error {
	if t.closed.Load() || t.program == nil {
		return ErrClosed
	}
	t.program.Send(msg)
	return nil
}

// Close stops the program, waits for it to restore the terminal and
// releases the claim. Closing twice is harmless.
func (t *Terminal) Close() error {
	if t.program == nil || !t.closed.CompareAndSwap(false, true) {
		return nil
	}
	t.program.Quit()
	err := <-t.done
	t.program = nil
	claimed.Store(false)
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("stopping terminal program: %w", err)
	}
	return nil
}

// ────────────────────────────────────────────────────────────
// Writers
// ────────────────────────────────────────────────────────────

// PanelWriter buffers watch panel writes in a Grid and ships a snapshot on
// Flush.
type PanelWriter struct {
	term *Terminal
	grid *Grid
}

func newPanelWriter(t *Terminal, layout Layout) *PanelWriter {
	return &PanelWriter{term: t, grid: NewGrid(layout.PanelWidth, layout.PanelHeight)}
}

func (w *PanelWriter) Clear() {
	w.grid.Clear()
}

func (w *PanelWriter) WriteAt(row, col int, text string) {
	w.grid.WriteAt(row, col, text)
}

func (w *PanelWriter) Flush() error {
	return w.term.send(panelMsg{lines: w.grid.Lines(), at: time.Now()})
}

// LogWriter buffers log text until Flush.
type LogWriter struct {
	term    *Terminal
	pending string
	at      time.Time
}

func (w *LogWriter) Append(text string) {
	if w.pending == "" {
		w.at = time.Now()
	}
	w.pending += text
}

func (w *LogWriter) Flush() error {
	if w.pending == "" {
		return nil
	}
	msg := logMsg{text: w.pending, at: w.at}
	w.pending = ""
	return w.term.send(msg)
}
