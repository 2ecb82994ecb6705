package tui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func testLayout() Layout {
	return Layout{
		PanelWidth:   50,
		PanelHeight:  23,
		LogWidth:     29,
		LogHeight:    23,
		AddressWidth: 24,
		Info:         []string{"64-bit", "little-endian", "20 rows"},
	}
}

// ────────────────────────────────────────────────────────────
// Log pane
// ────────────────────────────────────────────────────────────

func TestLogPanePartialLines(t *testing.T) {
	p := newLogPane(40, 10, 0, false)
	now := time.Now()

	p.append("tick ", now)
	p.append("1", now)
	if got := p.Lines(); len(got) != 1 || got[0] != "tick 1" {
		t.Fatalf("expected one unfinished line, got %q", got)
	}

	p.append("\nnext\n", now)
	got := p.Lines()
	if len(got) != 2 || got[0] != "tick 1" || got[1] != "next" {
		t.Errorf("got %q", got)
	}
}

func TestLogPaneEmptyLines(t *testing.T) {
	p := newLogPane(40, 10, 0, false)
	p.append("a\n\nb\n", time.Now())
	got := p.Lines()
	want := []string{"a", "", "b"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLogPaneExpandsTabs(t *testing.T) {
	p := newLogPane(40, 10, 0, false)
	p.append("a\tb\n", time.Now())
	if got := p.Lines()[0]; got != "a    b" {
		t.Errorf("got %q", got)
	}
}

func TestLogPaneScrollback(t *testing.T) {
	p := newLogPane(40, 10, 5, false)
	for i := 0; i < 12; i++ {
		p.append(fmt.Sprintf("line %d\n", i), time.Now())
	}
	got := p.Lines()
	if len(got) != 5 {
		t.Fatalf("expected 5 lines kept, got %d", len(got))
	}
	if got[0] != "line 7" || got[4] != "line 11" {
		t.Errorf("expected newest lines kept, got %q", got)
	}
}

func TestLogPaneDefaultScrollback(t *testing.T) {
	p := newLogPane(40, 10, -3, false)
	if p.scrollback != DefaultScrollback {
		t.Errorf("expected %d, got %d", DefaultScrollback, p.scrollback)
	}
}

func TestLogPaneTimestamps(t *testing.T) {
	p := newLogPane(60, 10, 0, true)
	at := time.Date(2026, 1, 2, 3, 4, 5, 250_000_000, time.Local)
	p.append("hello\n", at)

	line := ansi.Strip(p.lines[0])
	if !strings.HasPrefix(line, "03:04:05.250 ") {
		t.Errorf("expected timestamp prefix, got %q", line)
	}
	if !strings.HasSuffix(line, "hello") {
		t.Errorf("expected text after stamp, got %q", line)
	}
}

func TestLogPaneViewShowsNewest(t *testing.T) {
	p := newLogPane(30, 3, 0, false)
	for i := 0; i < 10; i++ {
		p.append(fmt.Sprintf("entry-%d\n", i), time.Now())
	}
	view := ansi.Strip(p.View())
	if !strings.Contains(view, "entry-9") {
		t.Errorf("expected newest entry visible:\n%s", view)
	}
	if strings.Contains(view, "entry-0") {
		t.Errorf("expected oldest entry scrolled away:\n%s", view)
	}
}

// ────────────────────────────────────────────────────────────
// Model
// ────────────────────────────────────────────────────────────

func TestModelPanelSnapshot(t *testing.T) {
	m := NewModel(testLayout(), Config{})

	g := NewGrid(50, 23)
	g.WriteAt(1, 1, "Memory Window:")
	g.WriteAt(2, 1, "0x000000C000012345<I32>:")
	g.WriteAt(2, 25, " 42")

	updated, cmd := m.Update(panelMsg{lines: g.Lines(), at: time.Now()})
	if cmd != nil {
		t.Error("expected no command")
	}
	m = updated.(Model)
	if m.refreshes != 1 {
		t.Errorf("expected 1 refresh, got %d", m.refreshes)
	}

	view := ansi.Strip(m.View())
	for _, want := range []string{"Memory Window:", "0x000000C000012345<I32>: 42", "MEMWATCH", "refresh #1", "little-endian"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModelLogMessage(t *testing.T) {
	m := NewModel(testLayout(), Config{})
	updated, _ := m.Update(logMsg{text: "started\n", at: time.Now()})
	m = updated.(Model)

	if got := m.log.Lines(); len(got) != 1 || got[0] != "started" {
		t.Errorf("got %q", got)
	}
	if !strings.Contains(ansi.Strip(m.View()), "started") {
		t.Error("expected log text in view")
	}
}

func TestModelWindowSizeResizesLogOnly(t *testing.T) {
	m := NewModel(testLayout(), Config{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)

	if m.log.width != 120-50-1 {
		t.Errorf("expected log width %d, got %d", 120-50-1, m.log.width)
	}
	if m.log.height != 39 {
		t.Errorf("expected log height 39, got %d", m.log.height)
	}
	if m.layout.PanelWidth != 50 || m.layout.PanelHeight != 23 {
		t.Error("watch panel size must not change")
	}
}

func TestModelViewFitsTerminal(t *testing.T) {
	m := NewModel(testLayout(), Config{})
	lines := strings.Split(m.View(), "\n")
	if len(lines) != 24 {
		t.Errorf("expected 24 lines, got %d", len(lines))
	}
	for i, l := range lines {
		if w := ansi.StringWidth(l); w > 80 {
			t.Errorf("line %d is %d wide", i, w)
		}
	}
}

func TestPanelKeepsSizeWithWideTitle(t *testing.T) {
	m := NewModel(testLayout(), Config{})

	// Lines wider than the interior, as a grid from elsewhere might send.
	title := strings.Repeat("観", 30)
	updated, _ := m.Update(panelMsg{lines: []string{title, "0x0000BEEF<I08>: 1"}, at: time.Now()})
	m = updated.(Model)

	panel := strings.Split(m.renderPanel(), "\n")
	if len(panel) != 23 {
		t.Fatalf("expected 23 panel rows, got %d", len(panel))
	}
	for i, l := range panel {
		if w := ansi.StringWidth(l); w != 50 {
			t.Errorf("panel row %d is %d wide", i, w)
		}
	}

	g := NewGrid(50, 23)
	g.WriteAt(1, 1, title)
	updated, _ = m.Update(panelMsg{lines: g.Lines(), at: time.Now()})
	m = updated.(Model)
	if n := len(strings.Split(m.View(), "\n")); n != 24 {
		t.Errorf("expected 24 view lines, got %d", n)
	}
}

func TestPadRightCountsColumns(t *testing.T) {
	if got := padRight("観観", 5); got != "観観 " {
		t.Errorf("got %q", got)
	}
	if got := padRight("観観観", 5); ansi.StringWidth(got) != 5 {
		t.Errorf("expected 5 columns, got %q", got)
	}
	if got := padRight("abc", 0); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestStyleRowKeepsText(t *testing.T) {
	m := NewModel(testLayout(), Config{})
	row := padRight("0x000000C000012345<F32>: 3.1400001e+00", 48)
	if got := ansi.Strip(m.styleRow(row)); got != row {
		t.Errorf("styling changed the text:\n%q\n%q", row, got)
	}
}

func TestSplitAt(t *testing.T) {
	a, b := splitAt("abcdef", 2)
	if a != "ab" || b != "cdef" {
		t.Errorf("got %q %q", a, b)
	}
	a, b = splitAt("abc", 10)
	if a != "abc" || b != "" {
		t.Errorf("got %q %q", a, b)
	}
}
