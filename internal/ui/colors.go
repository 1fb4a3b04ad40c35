package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Neon accent palette shared across the CLI surface.
const (
	ColorNeonPink   lipgloss.Color = "#FF2E88"
	ColorNeonCyan   lipgloss.Color = "#00F0FF"
	ColorNeonPurple lipgloss.Color = "#B026FF"
	ColorNeonGreen  lipgloss.Color = "#39FF14"
	ColorNeonOrange lipgloss.Color = "#FF6B1A"
	ColorNeonAmber  lipgloss.Color = "#FFBF00"
)

// Background and chrome colors.
const (
	ColorDeepVoid    lipgloss.Color = "#0A0A12"
	ColorDarkSurface lipgloss.Color = "#14141F"
	ColorGlassBorder lipgloss.Color = "#2A2A3A"
)

// Semantic colors for status indication.
const (
	ColorSuccess lipgloss.Color = "#39FF14"
	ColorError   lipgloss.Color = "#FF3131"
	ColorWarning lipgloss.Color = "#FFBF00"
	ColorInfo    lipgloss.Color = "#00F0FF"
)

// Text colors for content hierarchy.
const (
	ColorPrimary   lipgloss.Color = "#E8E8F0"
	ColorSecondary lipgloss.Color = "#7AA2F7"
	ColorMuted     lipgloss.Color = "#6C6C80"
)

// GradientColors cycle through the accent palette for animated elements.
var GradientColors = []lipgloss.Color{
	ColorNeonPink,
	ColorNeonPurple,
	ColorNeonCyan,
	ColorNeonGreen,
}

// SuccessStyle returns the style for success messages.
func SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorSuccess)
}

// ErrorStyle returns the style for error messages.
func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorError)
}

// WarningStyle returns the style for warning messages.
func WarningStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorWarning)
}

// InfoStyle returns the style for informational messages.
func InfoStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorInfo)
}

// DisableColors switches lipgloss to an ASCII profile, stripping all color
// output. Used by the --no-color flag and when stdout is not a terminal.
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
