// Package styles defines the visual styling for the terminal report.
package styles

import "github.com/charmbracelet/lipgloss"

// Color definitions.
var (
	// Primary colors
	Primary   = lipgloss.Color("205") // Pink
	Secondary = lipgloss.Color("63")  // Purple
	Subtle    = lipgloss.Color("240") // Gray

	// Status colors
	Success = lipgloss.Color("42")  // Green
	Error   = lipgloss.Color("196") // Red
	Warning = lipgloss.Color("220") // Yellow

	// Text colors
	TextPrimary   = lipgloss.Color("252")
	TextSecondary = lipgloss.Color("245")
	TextMuted     = lipgloss.Color("240")
)

// Bar gradient endpoints.
const (
	BarFrom = "#ffd93d"
	BarTo   = "#6c5ce7"
)

// TitleStyle is used for main headings.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	MarginBottom(1)

// CardStyle creates a bordered card container.
var CardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Subtle).
	Padding(0, 1)

// CardTitleStyle styles card headers.
var CardTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Secondary)

// TotalStyle styles the aggregate total next to a card title.
var TotalStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(TextPrimary)

// LabelStyle styles service labels.
var LabelStyle = lipgloss.NewStyle().
	Foreground(TextSecondary)

// CountStyle styles per-service counts.
var CountStyle = lipgloss.NewStyle().
	Foreground(TextPrimary).
	Align(lipgloss.Right)

// ZeroCountStyle styles services without activity.
var ZeroCountStyle = lipgloss.NewStyle().
	Foreground(TextMuted).
	Align(lipgloss.Right)

// MutedStyle for footers and hints.
var MutedStyle = lipgloss.NewStyle().
	Foreground(TextMuted)

// ErrorTextStyle for error messages.
var ErrorTextStyle = lipgloss.NewStyle().
	Foreground(Error).
	Bold(true)

// CountStyleFor picks the count style for a value.
func CountStyleFor(n int) lipgloss.Style {
	if n == 0 {
		return ZeroCountStyle
	}
	return CountStyle
}
