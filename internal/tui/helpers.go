package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// ────────────────────────────────────────────────────────────
// String helpers
// ────────────────────────────────────────────────────────────

// padRight fits s to exactly width terminal columns, padding with
// spaces or cutting it. A double-width rune that would straddle the edge
// is replaced by padding.
func padRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// clamp restricts val to [lo, hi].
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// splitAt cuts s into the runes before and after index i.
func splitAt(s string, i int) (string, string) {
	runes := []rune(s)
	i = clamp(i, 0, len(runes))
	return string(runes[:i]), string(runes[i:])
}
