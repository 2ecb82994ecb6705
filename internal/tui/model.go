package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ────────────────────────────────────────────────────────────
// Layout
// ────────────────────────────────────────────────────────────

// Layout is the fixed split of the terminal: the log panel on the left,
// a gap column, the watch panel on the right and a status line below.
type Layout struct {
	PanelWidth  int
	PanelHeight int
	LogWidth    int
	LogHeight   int

	// AddressWidth is the width of the "0x…<TAG>:" column inside the
	// watch panel; the last six characters of it are the type label.
	AddressWidth int

	// Info is static text shown in the status line.
	Info []string
}

// ────────────────────────────────────────────────────────────
// Messages
// ────────────────────────────────────────────────────────────

// panelMsg carries a full snapshot of the watch panel interior.
type panelMsg struct {
	lines []string
	at    time.Time
}

// logMsg carries text appended to the log panel.
type logMsg struct {
	text string
	at   time.Time
}

// ────────────────────────────────────────────────────────────
// Model
// ────────────────────────────────────────────────────────────

// Model is the bubbletea model behind the terminal surface. It only
// mirrors what the host pushed last; it never reads watched memory.
type Model struct {
	layout Layout

	panel []string
	log   logPane

	width  int
	height int

	refreshes   int
	lastRefresh time.Time
	started     time.Time
}

// NewModel creates a model for the given layout.
func NewModel(layout Layout, cfg Config) Model {
	return Model{
		layout:  layout,
		log:     newLogPane(layout.LogWidth, layout.LogHeight, cfg.Scrollback, cfg.Timestamps),
		width:   layout.LogWidth + 1 + layout.PanelWidth,
		height:  layout.PanelHeight + 1,
		started: time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		// The watch panel keeps the size it was opened with; the log
		// panel absorbs any change.
		m.width = msg.Width
		m.height = msg.Height
		logWidth := maxInt(msg.Width-m.layout.PanelWidth-1, 1)
		logHeight := maxInt(msg.Height-1, 1)
		m.log.resize(logWidth, logHeight)
		return m, nil

	case panelMsg:
		m.panel = msg.lines
		m.refreshes++
		m.lastRefresh = msg.at
		return m, nil

	case logMsg:
		m.log.append(msg.text, msg.at)
		return m, nil
	}

	return m, nil
}

// ────────────────────────────────────────────────────────────
// View
// ────────────────────────────────────────────────────────────

func (m Model) View() string {
	panel := m.renderPanel()
	logView := m.log.View()

	body := lipgloss.JoinHorizontal(lipgloss.Top, logView, " ", panel)
	return lipgloss.JoinVertical(lipgloss.Left, body, renderFooter(&m))
}

// renderPanel draws the watch panel with its border.
func (m Model) renderPanel() string {
	innerWidth := maxInt(m.layout.PanelWidth-2, 0)
	innerHeight := maxInt(m.layout.PanelHeight-2, 0)

	lines := make([]string, innerHeight)
	for i := range lines {
		var line string
		if i < len(m.panel) {
			line = m.panel[i]
		}
		line = padRight(line, innerWidth)
		if i == 0 {
			lines[i] = panelTitleStyle.Render(line)
			continue
		}
		lines[i] = m.styleRow(line)
	}

	return panelStyle.
		Width(innerWidth).
		Height(innerHeight).
		Render(strings.Join(lines, "\n"))
}

// styleRow colors the address, label and value parts of a slot row.
// Column 0 of a line is panel column 1, where the address starts.
func (m Model) styleRow(line string) string {
	if strings.TrimSpace(line) == "" || m.layout.AddressWidth <= labelChars {
		return valueStyle.Render(line)
	}
	address, rest := splitAt(line, m.layout.AddressWidth-labelChars)
	label, value := splitAt(rest, labelChars)
	return addressStyle.Render(address) + labelStyle.Render(label) + valueStyle.Render(value)
}

// labelChars is the width of a type label such as "<I32>:".
const labelChars = 6
