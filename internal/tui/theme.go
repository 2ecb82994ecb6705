package tui

import "github.com/charmbracelet/lipgloss"

// ────────────────────────────────────────────────────────────
// Color Palette (GitHub Dark)
// ────────────────────────────────────────────────────────────
//
// All colors are defined here. No ad-hoc color literals anywhere.

var (
	// Base
	colorBgSurface = lipgloss.Color("#1c2128")

	// Text
	colorText      = lipgloss.Color("#e6edf3")
	colorTextDim   = lipgloss.Color("#8b949e")
	colorTextMuted = lipgloss.Color("#484f58")

	// Accents
	colorBlue   = lipgloss.Color("#58a6ff")
	colorGreen  = lipgloss.Color("#3fb950")
	colorPurple = lipgloss.Color("#bc8cff")

	// Structural
	colorDivider = lipgloss.Color("#30363d")
)

// ────────────────────────────────────────────────────────────
// Component Styles
// ────────────────────────────────────────────────────────────

// Watch panel
var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorDivider)

	panelTitleStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	addressStyle = lipgloss.NewStyle().
			Foreground(colorBlue)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorPurple)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorText)
)

// Log panel
var (
	logTextStyle = lipgloss.NewStyle().
			Foreground(colorText)

	logStampStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)
)

// Footer / status bar
var (
	statusStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorBgSurface).
			Padding(0, 1)

	statusBrandStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Background(colorBgSurface).
				Bold(true).
				Padding(0, 1)

	statusMetaStyle = lipgloss.NewStyle().
			Foreground(colorTextDim).
			Background(colorBgSurface)

	statusLiveStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Background(colorBgSurface)
)
