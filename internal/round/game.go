package round

import (
	"fmt"
	"slices"

	"github.com/abhisek/schoolhelper/internal/problemgen"
	"github.com/abhisek/schoolhelper/internal/store"
)

// Game selects what a round asks.
type Game struct {
	Type store.GameType

	// Difficulty applies to math rounds.
	Difficulty problemgen.Difficulty

	// Mode applies to number rounds.
	Mode problemgen.Mode

	// Vocabulary applies to word rounds.
	Vocabulary []string
}

// Validate checks the configuration before a round starts.
func (g Game) Validate() error {
	switch g.Type {
	case store.GameMath:
		_, err := problemgen.MaxOperand(g.Difficulty)
		return err
	case store.GameNumbers:
		if !slices.Contains(problemgen.NumberModes(), g.Mode) {
			return fmt.Errorf("%w %q", problemgen.ErrInvalidMode, g.Mode)
		}
		return nil
	case store.GameWords:
		// Generating once surfaces ErrVocabularyTooSmall.
		_, err := problemgen.NewRandom().SightWord(g.Vocabulary)
		return err
	}
	return fmt.Errorf("unknown game %q", g.Type)
}

// Title is the heading shown when the round starts.
func (g Game) Title() string {
	switch g.Type {
	case store.GameMath:
		return fmt.Sprintf("Math Drill (%s)", g.Difficulty)
	case store.GameNumbers:
		return g.Mode.Label()
	case store.GameWords:
		return "Sight Words"
	}
	return string(g.Type)
}

// Question is one item of a round, whichever game produced it.
type Question struct {
	Prompt  string
	Spoken  string // read aloud before answering; empty if silent
	Answer  string
	Choices []string
}

// Source produces the questions of a round.
type Source interface {
	Next() (Question, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func() (Question, error)

func (f SourceFunc) Next() (Question, error) { return f() }

// NewSource returns the question source for game, backed by gen.
func NewSource(gen *problemgen.Generator, game Game) (Source, error) {
	if err := game.Validate(); err != nil {
		return nil, err
	}

	fromProblem := func(p problemgen.Problem, err error) (Question, error) {
		if err != nil {
			return Question{}, err
		}
		return Question{Prompt: p.Text, Spoken: p.Spoken, Answer: p.Answer, Choices: p.Choices}, nil
	}

	switch game.Type {
	case store.GameMath:
		return SourceFunc(func() (Question, error) {
			return fromProblem(gen.Arithmetic(game.Difficulty))
		}), nil
	case store.GameNumbers:
		return SourceFunc(func() (Question, error) {
			return fromProblem(gen.Number(game.Mode))
		}), nil
	default:
		return SourceFunc(func() (Question, error) {
			wp, err := gen.SightWord(game.Vocabulary)
			if err != nil {
				return Question{}, err
			}
			return Question{
				Prompt:  "Which word did you hear?",
				Spoken:  wp.Target,
				Answer:  wp.Target,
				Choices: wp.Choices,
			}, nil
		}), nil
	}
}
