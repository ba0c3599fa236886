// internal/tui/styles.go
//
// Shared lipgloss styles for the CLI and the interactive views.

package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#5B8DEF")
	colorDanger = lipgloss.Color("#FF6B6B")
	colorWarn   = lipgloss.Color("#F5C542")
	colorMuted  = lipgloss.Color("#888888")
	colorBody   = lipgloss.Color("#AAAAAA")
	colorBorder = lipgloss.Color("#444444")
)

var (
	bannerStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarn)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorDanger)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorBorder).
	Padding(0, 1)

// Banner renders a section heading.
func Banner(text string) string { return bannerStyle.Render(text) }

// Warning renders a non-fatal notice.
func Warning(text string) string { return warningStyle.Render("WARNING: " + text) }

// Error renders a fatal message.
func Error(text string) string { return errorStyle.Render("ERROR: " + text) }

// Muted renders secondary text.
func Muted(text string) string { return mutedStyle.Render(text) }
