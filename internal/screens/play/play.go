// Package play is the interactive screen for one round of questions.
package play

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/schoolhelper/internal/problemgen"
	"github.com/abhisek/schoolhelper/internal/round"
	"github.com/abhisek/schoolhelper/internal/ui/components"
)

// endOfInput is queued in place of a line when input ends during feedback.
const endOfInput = "\x04"

type phase int

const (
	phaseStarting phase = iota
	phaseAsking
	phaseFeedback
	phaseRecording
	phaseDone
)

// Config wires a round to the screen.
type Config struct {
	Round *round.Round

	// Speak reads text aloud without blocking. Nil for silent games.
	Speak func(text string)

	// Record stores the finished round. It runs off the update loop.
	Record func() round.Result
}

// Model drives one round: ask, read the answer, show feedback, repeat.
type Model struct {
	cfg   Config
	input components.TextInput
	phase phase

	question round.Question
	feedback round.Feedback
	seq      int
	hint     string
	word     string
	missed   bool // the last read-aloud failed everywhere

	// queued holds lines typed while no question was open.
	queued []string

	result *round.Result
	quit   bool
	err    error
}

var _ tea.Model = (*Model)(nil)

// New creates the screen for a round that has not started.
func New(cfg Config) *Model {
	return &Model{
		cfg:   cfg,
		input: components.NewTextInput("Your answer: ", "", 32),
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return nextQuestionMsg{} },
		m.input.Init(),
	)
}

// Result is the recorded outcome, or nil when the round did not finish.
func (m *Model) Result() *round.Result { return m.result }

// Quit reports whether the player left before the last question.
func (m *Model) Quit() bool { return m.quit }

// Err is the error that stopped the round, if any.
func (m *Model) Err() error { return m.err }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case nextQuestionMsg:
		return m, m.next()

	case feedbackDoneMsg:
		if msg.seq != m.seq || m.phase != phaseFeedback {
			return m, nil
		}
		return m, m.next()

	case recordedMsg:
		m.result = &msg.Result
		m.phase = phaseDone
		return m, tea.Quit

	case WordShownMsg:
		m.word = msg.Text
		return m, nil

	case WordHiddenMsg:
		m.word = ""
		return m, nil

	case PresentedMsg:
		m.missed = msg.Err != nil
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m.leave()

	case "ctrl+d":
		if m.phase == phaseAsking && len(m.queued) == 0 {
			return m.leave()
		}
		m.queued = append(m.queued, endOfInput)
		return m, nil

	case "enter", "ctrl+j":
		line := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		if line == "" {
			return m, nil
		}
		if m.phase != phaseAsking {
			m.queued = append(m.queued, line)
			return m, nil
		}
		return m, m.submit(line)
	}

	if m.phase == phaseRecording || m.phase == phaseDone {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// next moves past the current feedback to the next question, or records
// the round once every question was answered.
func (m *Model) next() tea.Cmd {
	r := m.cfg.Round
	if r.Done() {
		m.phase = phaseRecording
		m.queued = nil
		if m.cfg.Record == nil {
			return func() tea.Msg { return recordedMsg{} }
		}
		record := m.cfg.Record
		return func() tea.Msg { return recordedMsg{Result: record()} }
	}

	q, err := r.Next()
	if err != nil {
		m.err = fmt.Errorf("question %d: %w", r.Number(), err)
		m.phase = phaseDone
		return tea.Quit
	}
	m.question = q
	m.phase = phaseAsking
	m.hint = ""
	m.word = ""
	m.missed = false

	cmds := []tea.Cmd{m.speak()}
	for len(m.queued) > 0 && m.phase == phaseAsking {
		line := m.queued[0]
		m.queued = m.queued[1:]
		cmds = append(cmds, m.submit(line))
	}
	return tea.Batch(cmds...)
}

// submit handles one line typed while a question is open.
func (m *Model) submit(line string) tea.Cmd {
	if line == endOfInput {
		m.quit = true
		m.phase = phaseDone
		return tea.Quit
	}

	fb, err := m.cfg.Round.Answer(line)
	if err == nil {
		m.feedback = fb
		m.phase = phaseFeedback
		m.hint = ""
		m.seq++
		seq := m.seq
		return tea.Tick(fb.Delay, func(time.Time) tea.Msg { return feedbackDoneMsg{seq: seq} })
	}

	switch strings.ToLower(line) {
	case "quit", "exit":
		m.quit = true
		m.phase = phaseDone
		return tea.Quit
	case "?":
		if m.question.Spoken != "" {
			m.hint = ""
			return m.speak()
		}
	}
	m.hint = choiceHint(m.question.Choices)
	return nil
}

// choiceHint explains the answer grammar using the first choice as the
// example, so it gives nothing away.
func choiceHint(choices []string) string {
	if len(choices) == 0 {
		return ""
	}
	return fmt.Sprintf("Type 1 to %d, or %s and the answer (like %s%s).",
		len(choices), problemgen.TextPrefix, problemgen.TextPrefix, choices[0])
}

func (m *Model) leave() (tea.Model, tea.Cmd) {
	if m.phase != phaseRecording && m.phase != phaseDone {
		m.quit = true
		m.phase = phaseDone
	}
	return m, tea.Quit
}

func (m *Model) speak() tea.Cmd {
	text := m.question.Spoken
	if text == "" || m.cfg.Speak == nil {
		return nil
	}
	speak := m.cfg.Speak
	return func() tea.Msg {
		speak(text)
		return nil
	}
}
