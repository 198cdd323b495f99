package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Rainbow Purple
	Secondary = lipgloss.Color("#3B82F6") // Rainbow Blue
	Accent    = lipgloss.Color("#F97316") // Rainbow Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#DC2626") // Red
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate

	Gold   = lipgloss.Color("#EAB308")
	Silver = lipgloss.Color("#9CA3AF")
	Bronze = lipgloss.Color("#EA580C")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Prompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Streak = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

// Components
var (
	// Word is the card shown when a word cannot be heard.
	Word = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(0, 3)

	Choice = lipgloss.NewStyle().
		Foreground(Text).
		Bold(true)

	ChoiceKey = lipgloss.NewStyle().
			Foreground(TextDim)

	ProgressFilled = lipgloss.NewStyle().
			Foreground(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Foreground(Border)
)

// TierStyle returns the style for a trophy tier name.
func TierStyle(tier string) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	switch tier {
	case "gold":
		return s.Foreground(Gold)
	case "silver":
		return s.Foreground(Silver)
	case "bronze":
		return s.Foreground(Bronze)
	}
	return s.Foreground(TextDim)
}
