package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette: named constants for all ANSI 256 colors used in the CLI.
var (
	// ColorCyan is used for identifiable nouns: component keys, paths, target names.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the "generated" status.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "skipped" status.
	ColorYellow = lipgloss.Color("220")

	// ColorBoldRed is used for the "failed" status (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (component keys, paths).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome.
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Component status constants.
const (
	StatusGenerated = "generated"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
)

// StatusStyle returns the lipgloss style for a component status.
// Unknown statuses return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusGenerated:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusSkipped:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minComponentColumnWidth is the minimum width of the component column
// before the status suffix.
const minComponentColumnWidth = 48

// FormatComponentLine renders a component key with a right-aligned,
// color-coded status suffix: dc:<vendor/name>  <status>
func FormatComponentLine(key, status string) string {
	padding := minComponentColumnWidth - len(key)
	if padding < 2 {
		padding = 2
	}

	return StyleDim.Render("dc:") + StyleNoun.Render(key) + strings.Repeat(" ", padding) + StatusStyle(status).Render(status)
}

// FormatCheckmark renders a green checkmark with a message.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
