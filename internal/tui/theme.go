package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the subset the counter view draws with.
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorLavender lipgloss.Color = "#b4befe"
	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorMantle   lipgloss.Color = "#181825"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorPink)
	countStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	buttonStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface1).Padding(0, 2)
	pressedStyle  = buttonStyle.BorderForeground(colorLavender).Foreground(colorLavender)
	statusStyle   = lipgloss.NewStyle().Foreground(colorSubtext0)
	statsStyle    = lipgloss.NewStyle().Foreground(colorOverlay1)
	promptStyle   = lipgloss.NewStyle().Foreground(colorYellow)
	boundaryStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorRed).Padding(0, 1)
	boundaryTitle = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	suggestStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	footerStyle   = lipgloss.NewStyle().Foreground(colorText).Background(colorMantle).Padding(0, 2)
	helpKeyStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorLavender)
	helpDescStyle = lipgloss.NewStyle().Foreground(colorSubtext0)
)
