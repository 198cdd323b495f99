package round

import (
	"errors"
	"time"

	"github.com/abhisek/schoolhelper/internal/problemgen"
	"github.com/abhisek/schoolhelper/internal/store"
)

const (
	// DefaultQuestions is the number of questions per round.
	DefaultQuestions = 10

	// DefaultCorrectDelay is how long feedback stays up after a right answer.
	DefaultCorrectDelay = 800 * time.Millisecond

	// DefaultWrongDelay is how long feedback stays up after a wrong answer.
	DefaultWrongDelay = 1500 * time.Millisecond

	// StreakShownAt is the streak length from which the streak is displayed.
	StreakShownAt = 3
)

var (
	// ErrRoundOver is returned by Next once every question was answered.
	ErrRoundOver = errors.New("round is over")

	// ErrNoQuestion is returned by Answer when no question is pending.
	ErrNoQuestion = errors.New("no question pending")

	// ErrInvalidChoice is returned by Answer when input selects no choice.
	// The question stays pending.
	ErrInvalidChoice = errors.New("not one of the choices")
)

// Config tunes a round.
type Config struct {
	Questions    int
	CorrectDelay time.Duration
	WrongDelay   time.Duration
}

// DefaultConfig returns the standard round settings.
func DefaultConfig() Config {
	return Config{
		Questions:    DefaultQuestions,
		CorrectDelay: DefaultCorrectDelay,
		WrongDelay:   DefaultWrongDelay,
	}
}

// Answered is a question together with what the player chose.
type Answered struct {
	Question
	Picked  string
	Correct bool
}

// Feedback is shown after each answer.
type Feedback struct {
	Correct bool
	Answer  string
	Picked  string
	Score   int
	Total   int
	Streak  int

	// Delay is how long to show the feedback before the next question.
	Delay time.Duration
}

// ShowStreak reports whether the streak is long enough to display.
func (f Feedback) ShowStreak() bool { return f.Streak >= StreakShownAt }

// Round holds the state of one round of questions.
type Round struct {
	game   Game
	cfg    Config
	source Source
	now    func() time.Time

	start      time.Time
	current    *Question
	answered   []Answered
	score      int
	streak     int
	bestStreak int
}

// New creates a round. Zero config fields take their defaults.
func New(game Game, source Source, cfg Config) *Round {
	def := DefaultConfig()
	if cfg.Questions <= 0 {
		cfg.Questions = def.Questions
	}
	if cfg.CorrectDelay <= 0 {
		cfg.CorrectDelay = def.CorrectDelay
	}
	if cfg.WrongDelay <= 0 {
		cfg.WrongDelay = def.WrongDelay
	}
	r := &Round{game: game, cfg: cfg, source: source, now: time.Now}
	r.start = r.now()
	return r
}

// Game returns the game this round plays.
func (r *Round) Game() Game { return r.game }

// Next generates the next question and makes it pending.
func (r *Round) Next() (Question, error) {
	if r.Done() {
		return Question{}, ErrRoundOver
	}
	q, err := r.source.Next()
	if err != nil {
		return Question{}, err
	}
	r.current = &q
	return q, nil
}

// Current returns the pending question, if any.
func (r *Round) Current() (Question, bool) {
	if r.current == nil {
		return Question{}, false
	}
	return *r.current, true
}

// Answer scores input against the pending question. Input is read with
// problemgen.Pick: a bare 1..N is a position, "=7" is the choice "7".
func (r *Round) Answer(input string) (Feedback, error) {
	q := r.current
	if q == nil {
		return Feedback{}, ErrNoQuestion
	}
	picked, ok := problemgen.Pick(input, q.Choices)
	if !ok {
		return Feedback{}, ErrInvalidChoice
	}

	correct := picked == q.Answer
	r.answered = append(r.answered, Answered{Question: *q, Picked: picked, Correct: correct})
	r.current = nil

	fb := Feedback{Correct: correct, Answer: q.Answer, Picked: picked, Delay: r.cfg.WrongDelay}
	if correct {
		r.score++
		r.streak++
		if r.streak > r.bestStreak {
			r.bestStreak = r.streak
		}
		fb.Delay = r.cfg.CorrectDelay
	} else {
		r.streak = 0
	}
	fb.Score = r.score
	fb.Total = len(r.answered)
	fb.Streak = r.streak
	return fb, nil
}

// Done reports whether every question of the round was answered.
func (r *Round) Done() bool { return len(r.answered) >= r.cfg.Questions }

// Number is the 1-based index of the pending or next question.
func (r *Round) Number() int { return len(r.answered) + 1 }

// Questions returns the round length.
func (r *Round) Questions() int { return r.cfg.Questions }

// Score returns the number of correct answers so far.
func (r *Round) Score() int { return r.score }

// Answered returns the answered questions in order.
func (r *Round) Answered() []Answered {
	out := make([]Answered, len(r.answered))
	copy(out, r.answered)
	return out
}

// Summary holds the data shown when the round ends.
type Summary struct {
	Score      int
	Total      int
	Accuracy   float64
	BestStreak int
	Duration   time.Duration
}

// Summary reports the round so far.
func (r *Round) Summary() Summary {
	total := len(r.answered)
	var accuracy float64
	if total > 0 {
		accuracy = float64(r.score) / float64(total)
	}
	return Summary{
		Score:      r.score,
		Total:      total,
		Accuracy:   accuracy,
		BestStreak: r.bestStreak,
		Duration:   r.now().Sub(r.start),
	}
}

// Session converts the round into the record persisted for playerID.
func (r *Round) Session(playerID string) store.Session {
	sum := r.Summary()
	sess := store.Session{
		PlayerID:       playerID,
		GameType:       r.game.Type,
		Score:          sum.Score,
		TotalQuestions: sum.Total,
		TimeSeconds:    int(sum.Duration.Round(time.Second) / time.Second),
	}
	switch r.game.Type {
	case store.GameMath:
		sess.Difficulty = string(r.game.Difficulty)
	case store.GameNumbers:
		sess.Mode = string(r.game.Mode)
	}
	return sess
}
