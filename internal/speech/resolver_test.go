package speech

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_FirstSuccessWins(t *testing.T) {
	var tried []string
	mk := func(name string, err error) Strategy {
		return funcStrategy{name: name, fn: func(context.Context, string) error {
			tried = append(tried, name)
			return err
		}}
	}

	r := NewResolver(nil,
		mk("a", errors.New("nope")),
		mk("b", nil),
		mk("c", nil),
	)
	res, err := r.Resolve(context.Background(), "the")
	require.NoError(t, err)
	assert.Equal(t, "b", res.Strategy)
	assert.Equal(t, []string{"a", "b"}, tried)
	require.Len(t, res.Attempts, 2)
	assert.False(t, res.Attempts[0].Played())
	assert.True(t, res.Attempts[1].Played())
}

func TestResolver_Exhausted(t *testing.T) {
	boom := errors.New("boom")
	r := NewResolver(nil, funcStrategy{name: "only", fn: func(context.Context, string) error { return boom }})

	res, err := r.Resolve(context.Background(), "go")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExhausted)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, res.Strategy)

	var ae *AttemptError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "only", ae.Strategy)
}

func TestResolver_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := NewResolver(nil,
		funcStrategy{name: "a", fn: func(context.Context, string) error {
			cancel()
			return errors.New("interrupted")
		}},
		funcStrategy{name: "b", fn: func(context.Context, string) error {
			t.Fatal("strategy after cancellation must not run")
			return nil
		}},
	)
	_, err := r.Resolve(ctx, "go")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadAloud_Order(t *testing.T) {
	r := ReadAloud(ReadAloudConfig{
		Player:    &fakePlayer{},
		Preferred: WAV,
		Synth:     &fakeSynth{},
		Display:   &fakeDisplay{},
	}, nil)
	assert.Equal(t, []string{"recorded-wav", "recorded-mp3", "synthesis", "visual"}, r.Strategies())

	r = ReadAloud(ReadAloudConfig{}, nil)
	assert.Equal(t, []string{"visual"}, r.Strategies())
}

func TestReadAloud_PreferredFormatPlays(t *testing.T) {
	base := t.TempDir()
	player := &fakePlayer{available: map[string]bool{
		filepath.Join(base, "ana", "the.mp3"): true,
	}}
	synth := &fakeSynth{}
	r := ReadAloud(ReadAloudConfig{
		Player:    player,
		BaseDir:   base,
		VoiceID:   "ana",
		Preferred: MP3,
		Synth:     synth,
		Display:   &fakeDisplay{},
	}, nil)

	res, err := r.Resolve(context.Background(), "The")
	require.NoError(t, err)
	assert.Equal(t, "recorded-mp3", res.Strategy)
	assert.Zero(t, synth.speakCount())
}

func TestReadAloud_AlternateFormat(t *testing.T) {
	player := &fakePlayer{available: map[string]bool{
		filepath.Join("audio", "i.wav"): true,
	}}
	r := ReadAloud(ReadAloudConfig{
		Player:    player,
		BaseDir:   "audio",
		Preferred: MP3,
		Display:   &fakeDisplay{},
	}, nil)

	res, err := r.Resolve(context.Background(), "I")
	require.NoError(t, err)
	assert.Equal(t, "recorded-wav", res.Strategy)
	assert.Equal(t, []string{filepath.Join("audio", "i.mp3"), filepath.Join("audio", "i.wav")}, player.played)
}

func TestReadAloud_FallsBackToSynthesis(t *testing.T) {
	synth := &fakeSynth{}
	capability := NewCapability(&fakeSynth{}, time.Second)
	r := ReadAloud(ReadAloudConfig{
		Player:     &fakePlayer{},
		Synth:      synth,
		Capability: capability,
		Voice:      "Samantha",
		StartDelay: time.Millisecond,
		Display:    &fakeDisplay{},
	}, nil)

	res, err := r.Resolve(context.Background(), "play")
	require.NoError(t, err)
	assert.Equal(t, "synthesis", res.Strategy)

	synth.mu.Lock()
	defer synth.mu.Unlock()
	require.Len(t, synth.spoken, 1)
	u := synth.spoken[0]
	assert.Equal(t, "play", u.Text)
	assert.Equal(t, "Samantha", u.Voice)
	assert.Equal(t, DefaultRate, u.Rate)
	assert.Equal(t, DefaultPitch, u.Pitch)
	assert.Equal(t, 1.0, u.Volume)
	assert.Equal(t, []string{"cancel", "speak"}, synth.calls, "in-flight speech is cancelled first")
}

func TestReadAloud_BrokenSpeechReachesVisual(t *testing.T) {
	synth := &fakeSynth{err: errors.New("no audio device")}
	capability := NewCapability(synth, time.Second)
	require.Equal(t, Broken, capability.Check(context.Background()))

	display := &fakeDisplay{}
	r := ReadAloud(ReadAloudConfig{
		Player:          &fakePlayer{},
		Synth:           synth,
		Capability:      capability,
		Display:         display,
		DisplayDuration: 30 * time.Millisecond,
	}, nil)

	start := time.Now()
	res, err := r.Resolve(context.Background(), "look")
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, "visual", res.Strategy)
	assert.GreaterOrEqual(t, elapsed, 30*time.Millisecond)
	assert.Less(t, elapsed, time.Second)
	assert.Equal(t, 1, synth.speakCount(), "only the capability check reached the engine")
	assert.ErrorIs(t, res.Attempts[2].Err, ErrSpeechBroken)
	assert.Equal(t, []string{"look"}, display.shown)
	assert.Equal(t, 1, display.hidden)
}

func TestReadAloud_SynthesisErrorFallsThrough(t *testing.T) {
	synth := &fakeSynth{err: errors.New("engine error")}
	display := &fakeDisplay{}
	r := ReadAloud(ReadAloudConfig{
		Synth:           synth,
		Capability:      NewCapability(synth, time.Second),
		StartDelay:      time.Millisecond,
		Display:         display,
		DisplayDuration: time.Millisecond,
	}, nil)

	res, err := r.Resolve(context.Background(), "we")
	require.NoError(t, err)
	assert.Equal(t, "visual", res.Strategy)
	assert.Equal(t, 1, synth.speakCount())
}

func TestRecordedAudio_RejectsPaths(t *testing.T) {
	player := &fakePlayer{}
	r := &RecordedAudio{Player: player, BaseDir: "audio", Format: MP3}
	for _, word := range []string{"", "../secret", `a\b`, "x/y"} {
		assert.Error(t, r.Present(context.Background(), word), "word %q", word)
	}
	assert.Empty(t, player.played)
}

func TestAssetPath(t *testing.T) {
	tests := []struct {
		base, voice string
		f           Format
		word        string
		want        string
	}{
		{"audio/words", "", MP3, "I", filepath.Join("audio/words", "i.mp3")},
		{"audio/words", "mom", WAV, " Said ", filepath.Join("audio/words", "mom", "said.wav")},
		{"audio", "", MP3, "42", filepath.Join("audio", "42.mp3")},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AssetPath(tt.base, tt.voice, tt.f, tt.word))
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(".WAV")
	require.NoError(t, err)
	assert.Equal(t, WAV, f)
	assert.Equal(t, MP3, f.Alternate())
	assert.Equal(t, WAV, MP3.Alternate())

	_, err = ParseFormat("ogg")
	assert.Error(t, err)
}
