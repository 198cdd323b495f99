package speech

import (
	"context"
	"errors"
	"time"
)

// Defaults tuned for young listeners: slower and a little higher.
const (
	DefaultRate       = 0.75
	DefaultPitch      = 1.1
	DefaultStartDelay = 150 * time.Millisecond
)

var (
	// ErrSpeechBroken is returned when the capability check found
	// synthesis unusable on this machine.
	ErrSpeechBroken = errors.New("speech synthesis unavailable")

	// ErrInterrupted is returned by Speak when Cancel stopped the
	// utterance.
	ErrInterrupted = errors.New("utterance interrupted")
)

// Utterance is one request to the synthesis engine. Rate and Pitch are
// relative to the engine's normal (1.0); Volume ranges 0 to 1.
type Utterance struct {
	Text   string
	Voice  string
	Rate   float64
	Pitch  float64
	Volume float64
}

// Synthesizer is a text-to-speech engine.
type Synthesizer interface {
	// Speak blocks until the utterance finished or failed.
	Speak(ctx context.Context, u Utterance) error

	// Cancel stops any utterance in flight, which then returns
	// ErrInterrupted. It is safe to call when idle.
	Cancel()
}

// VoiceLister is implemented by synthesizers that can enumerate voices.
type VoiceLister interface {
	Voices(ctx context.Context) ([]Voice, error)
}

// Synthesis speaks the text with the synthesis engine.
type Synthesis struct {
	Synth      Synthesizer
	Capability *Capability
	Voice      string
	Rate       float64
	Pitch      float64

	// StartDelay avoids clipping the first syllable on engines that need
	// a moment after a cancel.
	StartDelay time.Duration
}

// NewSynthesis returns a Synthesis strategy with the default rate, pitch
// and start delay.
func NewSynthesis(synth Synthesizer, capability *Capability, voice string) *Synthesis {
	return &Synthesis{
		Synth:      synth,
		Capability: capability,
		Voice:      voice,
		Rate:       DefaultRate,
		Pitch:      DefaultPitch,
		StartDelay: DefaultStartDelay,
	}
}

func (s *Synthesis) Name() string { return "synthesis" }

// Present is skipped with ErrSpeechBroken once the capability is known to
// be Broken. While it is Unknown, Present waits for the check so the
// cancel below never lands on the test utterance.
func (s *Synthesis) Present(ctx context.Context, text string) error {
	if s.Synth == nil {
		return ErrSpeechBroken
	}
	if s.Capability != nil {
		if s.Capability.Check(ctx) == Broken {
			return ErrSpeechBroken
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	s.Synth.Cancel()
	if err := sleep(ctx, s.StartDelay); err != nil {
		return err
	}

	return s.Synth.Speak(ctx, Utterance{
		Text:   text,
		Voice:  s.Voice,
		Rate:   s.Rate,
		Pitch:  s.Pitch,
		Volume: 1,
	})
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
