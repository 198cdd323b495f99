package play

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/schoolhelper/internal/round"
	"github.com/abhisek/schoolhelper/internal/ui/components"
	"github.com/abhisek/schoolhelper/internal/ui/theme"
)

func (m *Model) View() tea.View {
	return tea.NewView(m.render())
}

// render draws the open question and its feedback. The finished round is
// printed by the caller once the program exits.
func (m *Model) render() string {
	if m.phase == phaseDone || m.phase == phaseRecording {
		return ""
	}
	if m.question.Prompt == "" {
		return theme.Hint.Render("Getting ready...") + "\n"
	}

	r := m.cfg.Round
	var b strings.Builder

	number := r.Number()
	if m.phase == phaseFeedback {
		number--
	}
	fmt.Fprintf(&b, "── Question %d/%d ──  %s\n", number, r.Questions(),
		components.NewProgressBar(number-1, r.Questions(), 20).View())
	b.WriteString(theme.Prompt.Render(m.question.Prompt) + "\n")
	b.WriteString(components.Choices(m.question.Choices) + "\n")

	if m.word != "" {
		b.WriteString(theme.Word.Render(m.word) + "\n")
	}
	if m.missed {
		b.WriteString(theme.Hint.Render("Could not read it aloud. Type ? to try again.") + "\n")
	}

	b.WriteString("\n")
	if m.phase == phaseFeedback {
		b.WriteString(feedbackLine(m.feedback) + "\n")
		fmt.Fprintf(&b, "Score: %d / %d\n", m.feedback.Score, m.feedback.Total)
		return b.String()
	}

	b.WriteString(m.input.View() + "\n")
	if m.hint != "" {
		b.WriteString(theme.Hint.Render(m.hint) + "\n")
	}
	return b.String()
}

func feedbackLine(fb round.Feedback) string {
	if !fb.Correct {
		return theme.Incorrect.Render("✗ The answer was " + fb.Answer)
	}
	line := theme.Correct.Render("✓ Correct!")
	if fb.ShowStreak() {
		line += "  " + theme.Streak.Render(fmt.Sprintf("🔥 %d", fb.Streak))
	}
	return line
}
