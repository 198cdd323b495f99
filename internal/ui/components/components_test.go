package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		done, total, width int
		want               string
	}{
		{0, 10, 10, "░░░░░░░░░░ 0/10"},
		{5, 10, 10, "█████░░░░░ 5/10"},
		{10, 10, 10, "██████████ 10/10"},
		{12, 10, 4, "████ 12/10"},
		{1, 0, 2, "░░░░ 1/0"},
	}
	for _, tt := range tests {
		got := ansi.Strip(NewProgressBar(tt.done, tt.total, tt.width).View())
		assert.Equal(t, tt.want, got)
	}
}

func TestChoices(t *testing.T) {
	got := ansi.Strip(Choices([]string{"the", "and", "go", "I"}))
	assert.Equal(t, "[1] the   [2] and   [3] go   [4] I", got)
	assert.Equal(t, 3, strings.Count(got, "   "))
}
