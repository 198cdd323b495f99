package problemgen

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
)

// Operand ranges.
const (
	multiplyMax    = 10
	compareMax     = 10
	successorMax   = 45
	recognizeMax   = 50
	recognizeLimit = 60
)

// Distractor windows: offsets drawn around a centre value.
const (
	arithmeticSpread = 5
	successorSpread  = 2
	recognizeSpread  = 10
)

// Generator produces random problems. It is not safe for concurrent use;
// give each goroutine its own Generator.
type Generator struct {
	rng *rand.Rand
}

// New returns a Generator drawing from src.
func New(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// NewRandom returns a Generator seeded from the runtime's random source.
func NewRandom() *Generator {
	return New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Operators returns the operators allowed at difficulty d.
func Operators(d Difficulty) ([]Operator, error) {
	switch d {
	case Easy:
		return []Operator{OpAdd}, nil
	case Medium:
		return []Operator{OpAdd, OpSubtract}, nil
	case Hard:
		return []Operator{OpAdd, OpSubtract, OpMultiply}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrInvalidDifficulty, d)
}

// MaxOperand returns the addition/subtraction operand bound at difficulty d.
func MaxOperand(d Difficulty) (int, error) {
	switch d {
	case Easy:
		return 10, nil
	case Medium:
		return 20, nil
	case Hard:
		return 50, nil
	}
	return 0, fmt.Errorf("%w %q", ErrInvalidDifficulty, d)
}

// Arithmetic generates an arithmetic drill problem for difficulty d.
func (g *Generator) Arithmetic(d Difficulty) (Problem, error) {
	ops, err := Operators(d)
	if err != nil {
		return Problem{}, err
	}
	max, err := MaxOperand(d)
	if err != nil {
		return Problem{}, err
	}

	op := ops[g.rng.IntN(len(ops))]
	var a, b, answer int
	switch op {
	case OpMultiply:
		a = g.between(1, multiplyMax)
		b = g.between(1, multiplyMax)
		answer = a * b
	case OpSubtract:
		a = g.between(1, max)
		b = g.between(1, a)
		answer = a - b
	default:
		a = g.between(1, max)
		b = g.between(1, max)
		answer = a + b
	}

	wrong, err := g.distractors(window{
		answer: answer,
		center: answer,
		spread: arithmeticSpread,
		min:    0,
	})
	if err != nil {
		return Problem{}, fmt.Errorf("arithmetic %d %s %d: %w", a, op, b, err)
	}

	p := Problem{
		Mode:     ModeArithmetic,
		Operator: op,
		Operands: []int{a, b},
		Answer:   strconv.Itoa(answer),
		Choices:  g.shuffled(answer, wrong),
		Text:     fmt.Sprintf("%d %s %d = ?", a, op, b),
	}
	return checked(p)
}

// checked returns p only if it passes Validate.
func checked(p Problem) (Problem, error) {
	if err := Validate(p); err != nil {
		return Problem{}, err
	}
	return p, nil
}

// Comparison generates a "which symbol goes in the middle?" problem.
func (g *Generator) Comparison() Problem {
	a := g.between(1, compareMax)
	b := g.between(1, compareMax)
	return Problem{
		Mode:     ModeCompare,
		Operator: OpCompare,
		Operands: []int{a, b},
		Answer:   Relate(a, b),
		Choices:  []string{Greater, Less, Equal},
		Text:     fmt.Sprintf("%d ? %d", a, b),
	}
}

// Relate returns the relation symbol that makes "a <sym> b" true.
func Relate(a, b int) string {
	switch {
	case a > b:
		return Greater
	case a < b:
		return Less
	default:
		return Equal
	}
}

// Successor generates a "what number comes next?" problem.
func (g *Generator) Successor() (Problem, error) {
	start := g.between(1, successorMax)
	answer := start + 1

	wrong, err := g.distractors(window{
		answer: answer,
		center: start,
		spread: successorSpread,
		min:    1,
	})
	if err != nil {
		return Problem{}, fmt.Errorf("successor of %d: %w", start, err)
	}

	p := Problem{
		Mode:     ModeCount,
		Operator: OpSuccessor,
		Operands: []int{start},
		Answer:   strconv.Itoa(answer),
		Choices:  g.shuffled(answer, wrong),
		Text:     fmt.Sprintf("%d → ?", start),
	}
	return checked(p)
}

// Recognition generates a "tap the number you hear" problem. The number is
// carried in Spoken; Text stays generic so the answer is not shown.
func (g *Generator) Recognition() (Problem, error) {
	n := g.between(1, recognizeMax)

	wrong, err := g.distractors(window{
		answer: n,
		center: n,
		spread: recognizeSpread,
		min:    1,
		max:    recognizeLimit,
	})
	if err != nil {
		return Problem{}, fmt.Errorf("recognize %d: %w", n, err)
	}

	p := Problem{
		Mode:     ModeRecognize,
		Operator: OpNone,
		Operands: []int{n},
		Answer:   strconv.Itoa(n),
		Choices:  g.shuffled(n, wrong),
		Text:     "Which number did you hear?",
		Spoken:   strconv.Itoa(n),
	}
	return checked(p)
}

// Number dispatches to the generator for a number-game mode.
func (g *Generator) Number(m Mode) (Problem, error) {
	switch m {
	case ModeRecognize:
		return g.Recognition()
	case ModeCompare:
		return g.Comparison(), nil
	case ModeCount:
		return g.Successor()
	}
	return Problem{}, fmt.Errorf("%w %q", ErrInvalidMode, m)
}

// SightWord picks a target word and three other distinct words from
// vocabulary. Duplicate entries in vocabulary are counted once.
func (g *Generator) SightWord(vocabulary []string) (WordProblem, error) {
	words := distinct(vocabulary)
	if len(words) < ChoiceCount {
		return WordProblem{}, fmt.Errorf("%w (got %d)", ErrVocabularyTooSmall, len(words))
	}

	// Partial Fisher-Yates: the first ChoiceCount slots end up uniformly
	// sampled without replacement, the first being the target.
	for i := 0; i < ChoiceCount; i++ {
		j := i + g.rng.IntN(len(words)-i)
		words[i], words[j] = words[j], words[i]
	}
	target := words[0]
	choices := slices.Clone(words[:ChoiceCount])
	g.rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	return WordProblem{Target: target, Choices: choices}, nil
}

// between returns a uniform integer in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

// shuffled formats answer and wrong into a randomly ordered choice list.
func (g *Generator) shuffled(answer int, wrong []int) []string {
	choices := make([]string, 0, len(wrong)+1)
	choices = append(choices, strconv.Itoa(answer))
	for _, w := range wrong {
		choices = append(choices, strconv.Itoa(w))
	}
	g.rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
	return choices
}

// distinct returns the unique entries of words in first-seen order.
func distinct(words []string) []string {
	seen := make(map[string]bool, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}
