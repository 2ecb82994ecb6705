package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Mr-Dark-debug/memwatch/pkg/timeutil"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// renderFooter produces the bottom status line:
//
//	MEMWATCH  64-bit │ little-endian │ 20 rows      refresh #42 12:00:01.250  up 1.2s
func renderFooter(m *Model) string {
	brand := statusBrandStyle.Render("MEMWATCH")
	sep := statusMetaStyle.Render(" │ ")

	var info []string
	for _, s := range m.layout.Info {
		info = append(info, statusMetaStyle.Render(s))
	}
	left := brand + strings.Join(info, sep)

	var right string
	if m.refreshes > 0 {
		right = statusLiveStyle.Render(fmt.Sprintf("refresh #%d", m.refreshes)) +
			statusMetaStyle.Render(" "+timeutil.FormatTimestamp(m.lastRefresh.UnixNano()))
	}
	right += statusMetaStyle.Render("  up " + timeutil.FormatDuration(time.Since(m.started)))
	right = statusStyle.Render(right)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		// Too narrow for both halves; keep the brand and info.
		return lipgloss.NewStyle().
			Background(colorBgSurface).
			Width(m.width).
			Render(ansi.Truncate(left, m.width, ""))
	}

	bar := left + statusMetaStyle.Render(strings.Repeat(" ", gap)) + right
	return lipgloss.NewStyle().
		Background(colorBgSurface).
		Width(m.width).
		Render(bar)
}
