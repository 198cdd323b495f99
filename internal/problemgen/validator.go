package problemgen

import (
	"fmt"
	"strconv"
)

// ValidationError describes a generated problem that breaks an invariant.
// It indicates a generator bug, never bad user input.
type ValidationError struct {
	Mode    Mode
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s problem: %s", e.Mode, e.Message)
}

// Validate checks the structural invariants every problem must satisfy:
// the expected number of choices, no duplicates, the answer present exactly
// once and numeric choices non-negative.
func Validate(p Problem) error {
	want := ChoiceCount
	if p.Mode == ModeCompare {
		want = 3
	}
	if len(p.Choices) != want {
		return &ValidationError{Mode: p.Mode, Message: fmt.Sprintf("%d choices, want %d", len(p.Choices), want)}
	}

	seen := make(map[string]bool, len(p.Choices))
	hits := 0
	for _, c := range p.Choices {
		if seen[c] {
			return &ValidationError{Mode: p.Mode, Message: fmt.Sprintf("duplicate choice %q", c)}
		}
		seen[c] = true
		if c == p.Answer {
			hits++
		}
		if p.Mode != ModeCompare {
			n, err := strconv.Atoi(c)
			if err != nil {
				return &ValidationError{Mode: p.Mode, Message: fmt.Sprintf("non-numeric choice %q", c)}
			}
			if n < 0 {
				return &ValidationError{Mode: p.Mode, Message: fmt.Sprintf("negative choice %d", n)}
			}
		}
	}
	if hits != 1 {
		return &ValidationError{Mode: p.Mode, Message: fmt.Sprintf("answer %q appears %d times", p.Answer, hits)}
	}
	return nil
}

// ValidateWord checks the invariants of a sight-word problem.
func ValidateWord(p WordProblem) error {
	if len(p.Choices) != ChoiceCount {
		return &ValidationError{Mode: "words", Message: fmt.Sprintf("%d choices, want %d", len(p.Choices), ChoiceCount)}
	}
	seen := make(map[string]bool, len(p.Choices))
	for _, c := range p.Choices {
		if seen[c] {
			return &ValidationError{Mode: "words", Message: fmt.Sprintf("duplicate choice %q", c)}
		}
		seen[c] = true
	}
	if !seen[p.Target] {
		return &ValidationError{Mode: "words", Message: fmt.Sprintf("target %q missing", p.Target)}
	}
	return nil
}
