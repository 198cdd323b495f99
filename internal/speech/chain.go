package speech

import (
	"time"

	"go.uber.org/zap"
)

// ReadAloudConfig wires the default "read this word aloud" chain.
type ReadAloudConfig struct {
	// Player plays recorded assets. Nil skips both recorded strategies.
	Player    Player
	BaseDir   string
	VoiceID   string
	Preferred Format

	// Synth speaks through the synthesis engine. Nil skips synthesis.
	Synth      Synthesizer
	Capability *Capability
	Voice      string
	Rate       float64
	Pitch      float64
	StartDelay time.Duration

	Display         Display
	DisplayDuration time.Duration
}

// ReadAloud builds the resolver for reading a word or number aloud:
// recorded audio in the preferred format, then in the alternate format,
// then synthesis, then the visual fallback.
func ReadAloud(cfg ReadAloudConfig, log *zap.Logger) *Resolver {
	var strategies []Strategy

	if cfg.Player != nil {
		preferred := cfg.Preferred
		if preferred == "" {
			preferred = MP3
		}
		for _, f := range []Format{preferred, preferred.Alternate()} {
			strategies = append(strategies, &RecordedAudio{
				Player:  cfg.Player,
				BaseDir: cfg.BaseDir,
				VoiceID: cfg.VoiceID,
				Format:  f,
			})
		}
	}

	if cfg.Synth != nil {
		syn := NewSynthesis(cfg.Synth, cfg.Capability, cfg.Voice)
		if cfg.Rate > 0 {
			syn.Rate = cfg.Rate
		}
		if cfg.Pitch > 0 {
			syn.Pitch = cfg.Pitch
		}
		if cfg.StartDelay > 0 {
			syn.StartDelay = cfg.StartDelay
		}
		strategies = append(strategies, syn)
	}

	display := cfg.Display
	if display == nil {
		display = discardDisplay{}
	}
	strategies = append(strategies, &Visual{
		Display:  display,
		Duration: cfg.DisplayDuration,
	})

	return NewResolver(log, strategies...)
}
