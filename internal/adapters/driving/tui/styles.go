package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the chat.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Warning indicates degraded responses.
	Warning lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary: lipgloss.Color("#7C3AED"), // Purple
		Muted:   lipgloss.Color("#6C7086"), // Medium gray
		Error:   lipgloss.Color("#F38BA8"), // Red
		Warning: lipgloss.Color("#F9E2AF"), // Yellow
		Border:  lipgloss.Color("#45475A"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles for the chat.
type Styles struct {
	theme *Theme

	// Title style for the header.
	Title lipgloss.Style

	// Question style for the user's messages.
	Question lipgloss.Style

	// Answer style for generated answers.
	Answer lipgloss.Style

	// Degraded style for context-only responses.
	Degraded lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Muted style for hints and the status line.
	Muted lipgloss.Style

	// InputBox style framing the input field.
	InputBox lipgloss.Style
}

// DefaultStyles returns styles built from the default theme.
func DefaultStyles() *Styles {
	theme := DefaultTheme()
	return &Styles{
		theme:    theme,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Question: lipgloss.NewStyle().Bold(true),
		Answer:   lipgloss.NewStyle(),
		Degraded: lipgloss.NewStyle().Foreground(theme.Warning),
		Error:    lipgloss.NewStyle().Foreground(theme.Error),
		Muted:    lipgloss.NewStyle().Foreground(theme.Muted),
		InputBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
	}
}
