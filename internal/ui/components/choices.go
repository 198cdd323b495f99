package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/schoolhelper/internal/ui/theme"
)

// Choices renders numbered answer choices on one line, e.g. "[1] 7  [2] 9".
func Choices(choices []string) string {
	parts := make([]string, len(choices))
	for i, c := range choices {
		parts[i] = theme.ChoiceKey.Render(fmt.Sprintf("[%d]", i+1)) + " " + theme.Choice.Render(c)
	}
	return strings.Join(parts, "   ")
}
