package play

import "github.com/abhisek/schoolhelper/internal/round"

// nextQuestionMsg asks the model to pull the next question from the round.
type nextQuestionMsg struct{}

// feedbackDoneMsg is sent when the feedback display period ends. seq
// matches the answer that started it.
type feedbackDoneMsg struct {
	seq int
}

// recordedMsg carries the stored outcome of a finished round.
type recordedMsg struct {
	Result round.Result
}

// WordShownMsg is sent when the visual fallback puts a word on screen.
type WordShownMsg struct {
	Text string
}

// WordHiddenMsg is sent when the visual fallback takes the word down.
type WordHiddenMsg struct{}

// PresentedMsg reports how a question was read aloud. Err is set when
// every strategy failed.
type PresentedMsg struct {
	Text     string
	Strategy string
	Err      error
}
