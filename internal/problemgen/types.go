package problemgen

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidDifficulty is returned for a difficulty outside easy/medium/hard.
	ErrInvalidDifficulty = errors.New("invalid difficulty")

	// ErrInvalidMode is returned for an unknown number-game mode.
	ErrInvalidMode = errors.New("invalid mode")

	// ErrVocabularyTooSmall is returned when a word list has fewer than
	// ChoiceCount distinct words.
	ErrVocabularyTooSmall = errors.New("vocabulary needs at least 4 distinct words")

	// ErrNoDistractors is returned when the bounds leave too few wrong answers.
	ErrNoDistractors = errors.New("not enough distractor candidates")
)

// ChoiceCount is the number of choices shown for numeric and word problems.
const ChoiceCount = 4

// Difficulty selects the operator set and operand range of arithmetic drills.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// AllDifficulties returns the difficulties in ascending order.
func AllDifficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

// ParseDifficulty validates a difficulty name (case-insensitive).
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case Easy, Medium, Hard:
		return d, nil
	}
	return "", fmt.Errorf("%w %q: must be easy, medium or hard", ErrInvalidDifficulty, s)
}

// Mode identifies which generator produced a problem.
type Mode string

const (
	ModeArithmetic Mode = "arithmetic"
	ModeCompare    Mode = "compare"
	ModeCount      Mode = "count"
	ModeRecognize  Mode = "recognize"
)

// NumberModes returns the number-game modes in menu order.
func NumberModes() []Mode {
	return []Mode{ModeRecognize, ModeCompare, ModeCount}
}

// ParseMode validates a number-game mode name.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ModeRecognize, ModeCompare, ModeCount:
		return m, nil
	}
	return "", fmt.Errorf("%w %q: must be recognize, compare or count", ErrInvalidMode, s)
}

// Label returns the menu label the game is known by.
func (m Mode) Label() string {
	switch m {
	case ModeArithmetic:
		return "Math Drill"
	case ModeRecognize:
		return "Say the Number"
	case ModeCompare:
		return "Compare Numbers"
	case ModeCount:
		return "What Comes Next?"
	default:
		return string(m)
	}
}

// Operator is the symbol shown between operands.
type Operator string

const (
	OpAdd       Operator = "+"
	OpSubtract  Operator = "-"
	OpMultiply  Operator = "×"
	OpCompare   Operator = "?"
	OpSuccessor Operator = "→"
	OpNone      Operator = ""
)

// Relation symbols used as comparison answers.
const (
	Greater = ">"
	Less    = "<"
	Equal   = "="
)

// Problem is one numeric question. It is immutable once generated.
type Problem struct {
	Mode     Mode
	Operator Operator

	// Operands holds two values for arithmetic and comparison, one for
	// successor and recognition problems.
	Operands []int

	// Answer is the correct choice, formatted the same way as Choices.
	Answer string

	// Choices contains ChoiceCount entries (3 for comparison), one of which
	// equals Answer.
	Choices []string

	// Text is the prompt shown to the player.
	Text string

	// Spoken is read aloud before the player answers. Empty when the
	// problem is purely visual.
	Spoken string
}

// WordProblem is one sight-word question: hear Target, pick it from Choices.
type WordProblem struct {
	Target  string
	Choices []string
}
