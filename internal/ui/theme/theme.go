// Package theme holds the terminal styles used by the edubot CLI.
package theme

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Palette, matched to the web client's navy and saffron.
var (
	Primary   = lipgloss.Color("#F59E0B") // Saffron
	Secondary = lipgloss.Color("#0EA5E9") // Sky
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	Border    = lipgloss.Color("#334155")
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Label = lipgloss.NewStyle().
		Foreground(TextDim).
		Width(11)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Student = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary)

	Bot = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	OK = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Fail = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// Rule returns a horizontal line of width cells.
func Rule(width int) string {
	return lipgloss.NewStyle().Foreground(Border).Render(strings.Repeat("─", width))
}

// Field renders "label  value" with the label column aligned.
func Field(label, value string) string {
	return Label.Render(label+":") + " " + Body.Render(value)
}

// Mark renders a check or a cross.
func Mark(ok bool) string {
	if ok {
		return OK.Render("✓")
	}
	return Fail.Render("✗")
}
