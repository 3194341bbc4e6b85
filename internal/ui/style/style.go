// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
	Slate  = lipgloss.Color("#667085")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(Green)
	failureStyle = lipgloss.NewStyle().Foreground(Red)
)

// SuccessLine renders a green check-marked confirmation line.
func SuccessLine(msg string) string {
	return successStyle.Render(Check + " " + msg)
}

// FailureLine renders a red cross-marked failure line.
func FailureLine(msg string) string {
	return failureStyle.Render(Cross + " " + msg)
}
