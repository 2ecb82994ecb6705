package tui

import (
	"strings"
	"time"

	"github.com/Mr-Dark-debug/memwatch/pkg/timeutil"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// DefaultScrollback is how many completed lines the log panel keeps.
const DefaultScrollback = 1000

// logPane accumulates printf-style output. Text is appended verbatim, so
// a line is only complete once a newline arrives; the unfinished tail is
// still shown.
type logPane struct {
	viewport viewport.Model

	lines      []string
	partial    string
	partialAt  time.Time
	scrollback int
	timestamps bool

	width  int
	height int
}

func newLogPane(width, height, scrollback int, timestamps bool) logPane {
	if scrollback <= 0 {
		scrollback = DefaultScrollback
	}
	pane := logPane{
		scrollback: scrollback,
		timestamps: timestamps,
	}
	pane.resize(width, height)
	return pane
}

// append adds text received at the given time.
func (p *logPane) append(text string, at time.Time) {
	text = strings.ReplaceAll(text, "\t", "    ")
	segments := strings.Split(text, "\n")
	for i, seg := range segments {
		if seg != "" && p.partial == "" {
			p.partialAt = at
		}
		p.partial += seg
		if i < len(segments)-1 {
			p.complete()
		}
	}
	if len(p.lines) > p.scrollback {
		p.lines = append([]string(nil), p.lines[len(p.lines)-p.scrollback:]...)
	}
	p.sync()
}

// complete moves the unfinished line into the scrollback.
func (p *logPane) complete() {
	line := p.partial
	if p.timestamps && p.partial != "" {
		line = p.stamp(p.partialAt) + line
	}
	p.lines = append(p.lines, line)
	p.partial = ""
}

func (p *logPane) stamp(at time.Time) string {
	return logStampStyle.Render(timeutil.FormatTimestamp(at.UnixNano())) + " "
}

func (p *logPane) resize(width, height int) {
	p.width = maxInt(width, 1)
	p.height = maxInt(height, 1)
	p.viewport.Width = p.width
	p.viewport.Height = p.height
	p.sync()
}

// sync rebuilds the viewport content and pins it to the newest line.
func (p *logPane) sync() {
	all := p.lines
	if p.partial != "" {
		tail := p.partial
		if p.timestamps {
			tail = p.stamp(p.partialAt) + tail
		}
		all = append(append([]string(nil), p.lines...), tail)
	}

	body := lipgloss.NewStyle().Width(p.width).Render(strings.Join(all, "\n"))
	p.viewport.SetContent(body)
	p.viewport.GotoBottom()
}

// Lines returns the completed lines followed by the unfinished one, if any.
func (p *logPane) Lines() []string {
	out := append([]string(nil), p.lines...)
	if p.partial != "" {
		out = append(out, p.partial)
	}
	return out
}

func (p logPane) View() string {
	return lipgloss.NewStyle().
		Width(p.width).
		Height(p.height).
		Render(logTextStyle.Render(p.viewport.View()))
}
