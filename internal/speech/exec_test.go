package speech

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBin writes an executable shell script named name into a directory
// that is put first on PATH.
func stubBin(t *testing.T, name, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs need a POSIX shell")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestExecSynthesizer_Speak(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		wantErr bool
	}{
		{name: "engine exits cleanly", script: `printf '%s\n' "$@" > "$SPEAK_LOG"`},
		{name: "engine fails", script: "echo 'no audio device' >&2; exit 3", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stubBin(t, string(EngineEspeak), tc.script)
			logPath := filepath.Join(t.TempDir(), "args")
			t.Setenv("SPEAK_LOG", logPath)

			synth, err := NewExecSynthesizer(EngineEspeak)
			require.NoError(t, err)

			err = synth.Speak(context.Background(), Utterance{Text: "cat", Rate: 1, Pitch: 1, Volume: 1})
			if tc.wantErr {
				require.Error(t, err)
				assert.NotErrorIs(t, err, ErrInterrupted)
				assert.Contains(t, err.Error(), "espeak-ng")
				return
			}
			require.NoError(t, err)

			args, err := os.ReadFile(logPath)
			require.NoError(t, err)
			assert.Equal(t, "-a\n100\n-s\n175\n-p\n50\ncat\n", string(args))
		})
	}
}

func TestExecSynthesizer_CancelKillsUtterance(t *testing.T) {
	stubBin(t, string(EngineEspeak), "exec sleep 5")
	synth, err := NewExecSynthesizer(EngineEspeak)
	require.NoError(t, err)

	result := make(chan error, 1)
	start := time.Now()
	go func() { result <- synth.Speak(context.Background(), Utterance{Text: "dog", Volume: 1}) }()

	require.Eventually(t, func() bool {
		synth.mu.Lock()
		defer synth.mu.Unlock()
		return synth.current != nil
	}, 2*time.Second, 5*time.Millisecond)
	synth.Cancel()

	select {
	case err := <-result:
		assert.ErrorIs(t, err, ErrInterrupted)
	case <-time.After(3 * time.Second):
		t.Fatal("Speak did not return after Cancel")
	}
	assert.Less(t, time.Since(start), 3*time.Second)

	// Idle cancel is a no-op.
	synth.Cancel()
}

func TestExecSynthesizer_ContextEndsUtterance(t *testing.T) {
	stubBin(t, string(EngineEspeak), "exec sleep 5")
	synth, err := NewExecSynthesizer(EngineEspeak)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err = synth.Speak(ctx, Utterance{Text: "dog", Volume: 1})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInterrupted, "a deadline is not an external cancel")
}

func TestExecSynthesizer_CheckSurvivesWordOnSeparateEngine(t *testing.T) {
	stubBin(t, string(EngineEspeak), "sleep 0.3")

	checkSynth, err := NewExecSynthesizer(EngineEspeak)
	require.NoError(t, err)
	wordSynth, err := NewExecSynthesizer(EngineEspeak)
	require.NoError(t, err)

	c := NewCapability(checkSynth, 2*time.Second)
	checked := make(chan State, 1)
	go func() { checked <- c.Check(context.Background()) }()

	time.Sleep(50 * time.Millisecond)
	s := NewSynthesis(wordSynth, c, "")
	s.StartDelay = 0
	require.NoError(t, s.Present(context.Background(), "cat"))

	assert.Equal(t, Working, <-checked)
	assert.Equal(t, Working, c.State())
}

func TestNewExecSynthesizer_Errors(t *testing.T) {
	_, err := NewExecSynthesizer(EngineNone)
	assert.Error(t, err)

	t.Setenv("PATH", t.TempDir())
	_, err = NewExecSynthesizer(EngineSay)
	assert.Error(t, err)
}

func TestExecPlayer_Play(t *testing.T) {
	stubBin(t, "stubplay", `[ -f "$1" ] || { echo "cannot open $1" >&2; exit 1; }`)

	player, err := NewExecPlayer("stubplay")
	require.NoError(t, err)

	asset := filepath.Join(t.TempDir(), "cat.mp3")
	require.NoError(t, os.WriteFile(asset, []byte("ID3"), 0o644))
	assert.NoError(t, player.Play(context.Background(), asset))

	missing := filepath.Join(t.TempDir(), "dog.mp3")
	err = player.Play(context.Background(), missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot open")
	assert.Contains(t, err.Error(), missing)
}

func TestNewExecPlayer_Errors(t *testing.T) {
	_, err := NewExecPlayer("   ")
	assert.Error(t, err)

	t.Setenv("PATH", t.TempDir())
	_, err = NewExecPlayer(DefaultPlayerCommand)
	assert.ErrorIs(t, err, exec.ErrNotFound)
}
