package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	colorText     lipgloss.Color = "#cdd6f4"
	colorMuted    lipgloss.Color = "#a6adc8"
	colorBorder   lipgloss.Color = "#585b70"
	colorAccent   lipgloss.Color = "#89b4fa"
	colorSuccess  lipgloss.Color = "#a6e3a1"
	colorError    lipgloss.Color = "#f38ba8"
	colorSurface0 lipgloss.Color = "#313244"
	colorMantle   lipgloss.Color = "#181825"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	textStyle    = lipgloss.NewStyle().Foreground(colorText)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
	selectedCardStyle = cardStyle.BorderForeground(colorAccent)

	activeChipStyle = lipgloss.NewStyle().
			Background(colorAccent).
			Foreground(colorMantle).
			Bold(true).
			Padding(0, 1)
	chipStyle = lipgloss.NewStyle().
			Background(colorSurface0).
			Foreground(colorMuted).
			Padding(0, 1)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorError).
			Padding(1, 2)

	statusBarStyle    = lipgloss.NewStyle().Foreground(colorSuccess)
	statusErrBarStyle = lipgloss.NewStyle().Foreground(colorError)
	keyStyle          = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	helpDescStyle     = lipgloss.NewStyle().Foreground(colorMuted)
)

// renderBar pads or truncates text to a single line of width cells.
func renderBar(style lipgloss.Style, width int, text string) string {
	line := strings.ReplaceAll(text, "\n", " ")
	if width <= 0 {
		return style.Render(line)
	}
	line = ansi.Truncate(line, width, "…")
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	return style.Background(colorSurface0).Render(line)
}
