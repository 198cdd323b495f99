package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/schoolhelper/internal/ui/theme"
)

// ProgressBar is a one-line bar of answered questions.
type ProgressBar struct {
	Done  int
	Total int
	Width int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(done, total, width int) ProgressBar {
	return ProgressBar{Done: done, Total: total, Width: width}
}

// View renders the progress bar followed by "done/total".
func (p ProgressBar) View() string {
	width := p.Width
	if width < 4 {
		width = 4
	}

	filled := 0
	if p.Total > 0 {
		filled = width * p.Done / p.Total
	}
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	return theme.ProgressFilled.Render(strings.Repeat("█", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat("░", width-filled)) +
		theme.Hint.Render(fmt.Sprintf(" %d/%d", p.Done, p.Total))
}
