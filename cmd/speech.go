package cmd

import (
	"context"
	"io"
	"runtime"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/schoolhelper/internal/screens/play"
	"github.com/abhisek/schoolhelper/internal/speech"
	"github.com/abhisek/schoolhelper/internal/ui/theme"
)

// Preference keys shared by play and settings.
const (
	prefSpeechVoice = "speech.voice"
	prefAudioVoice  = "audio.voice"
	prefLastPlayer  = "player.last"
)

// termDisplay is the visual fallback outside a round: the word printed
// as a card.
type termDisplay struct {
	w io.Writer
}

func (d termDisplay) Show(text string) {
	lipgloss.Fprintln(d.w, theme.Word.Render(text))
}

func (d termDisplay) Hide() {}

// screenDisplay is the visual fallback inside a round: the card is drawn
// by the play screen.
type screenDisplay struct {
	p *tea.Program
}

func (d screenDisplay) Show(text string) {
	d.p.Send(play.WordShownMsg{Text: text})
}

func (d screenDisplay) Hide() {
	d.p.Send(play.WordHiddenMsg{})
}

// speechDevices are the machine's audio adapters; either may be nil.
type speechDevices struct {
	player *speech.ExecPlayer
	synth  *speech.ExecSynthesizer
}

func (e *appEnv) speechDevices(mute bool) speechDevices {
	var dev speechDevices
	if mute {
		return dev
	}
	if p, err := speech.NewExecPlayer(e.cfg.Audio.Player); err != nil {
		e.log.Debug("recorded audio unavailable", zap.Error(err))
	} else {
		dev.player = p
	}

	engine := speech.ResolveEngine(speech.Engine(e.cfg.Speech.Engine), runtime.GOOS)
	if s, err := speech.NewExecSynthesizer(engine); err != nil {
		e.log.Debug("speech synthesis unavailable", zap.String("engine", string(engine)), zap.Error(err))
	} else {
		dev.synth = s
	}
	return dev
}

// pref reads a preference, treating storage errors and a missing store
// as unset.
func (e *appEnv) pref(ctx context.Context, key string) string {
	if e.repo == nil {
		return ""
	}
	v, _, err := e.repo.Pref(ctx, key)
	if err != nil {
		e.log.Warn("read preference", zap.String("key", key), zap.Error(err))
		return ""
	}
	return v
}

// voiceFor picks the synthesis voice: the saved one if still installed,
// else the friendliest available.
func (e *appEnv) voiceFor(ctx context.Context, synth *speech.ExecSynthesizer) string {
	if synth == nil {
		return ""
	}
	voices, err := synth.Voices(ctx)
	if err != nil {
		e.log.Debug("list voices", zap.Error(err))
		return e.pref(ctx, prefSpeechVoice)
	}
	v, ok := speech.PreferredVoice(voices, e.pref(ctx, prefSpeechVoice))
	if !ok {
		return ""
	}
	return v.Name
}

// readAloud builds the presentation chain and its capability handle.
// The capability is nil when no synthesizer is available.
func (e *appEnv) readAloud(ctx context.Context, mute bool, display speech.Display) (*speech.Resolver, *speech.Capability) {
	dev := e.speechDevices(mute)

	format, err := speech.ParseFormat(e.cfg.Audio.PreferredFormat)
	if err != nil {
		e.log.Warn("audio format", zap.Error(err))
		format = speech.MP3
	}

	rc := speech.ReadAloudConfig{
		BaseDir:         e.cfg.Audio.BaseDir,
		VoiceID:         e.pref(ctx, prefAudioVoice),
		Preferred:       format,
		Rate:            e.cfg.Speech.Rate,
		Pitch:           e.cfg.Speech.Pitch,
		StartDelay:      e.cfg.Speech.StartDelay,
		Display:         display,
		DisplayDuration: e.cfg.Display.Duration,
	}
	if dev.player != nil {
		rc.Player = dev.player
	}

	var capability *speech.Capability
	if dev.synth != nil {
		// The check gets its own engine handle so that cancelling a word
		// never stops the test utterance, and the reverse.
		var check speech.Synthesizer
		if s, err := speech.NewExecSynthesizer(dev.synth.Engine()); err != nil {
			e.log.Debug("speech check engine", zap.Error(err))
		} else {
			check = s
		}
		capability = speech.NewCapability(check, e.cfg.Speech.CheckTimeout)
		rc.Synth = dev.synth
		rc.Capability = capability
		rc.Voice = e.voiceFor(ctx, dev.synth)
	}

	resolver := speech.ReadAloud(rc, e.log)
	e.log.Debug("read-aloud chain", zap.Strings("strategies", resolver.Strategies()))
	return resolver, capability
}
