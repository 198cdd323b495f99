package speech

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Format is a recorded-audio file format.
type Format string

const (
	MP3 Format = "mp3"
	WAV Format = "wav"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case MP3, WAV:
		return f, nil
	}
	return "", fmt.Errorf("unsupported audio format %q", s)
}

// Alternate returns the other supported format.
func (f Format) Alternate() Format {
	if f == WAV {
		return MP3
	}
	return WAV
}

// Player plays an audio file and blocks until playback ends. A missing or
// unreadable file is reported as a playback error.
type Player interface {
	Play(ctx context.Context, path string) error
}

// AssetPath returns where the recording of word lives:
// baseDir[/voiceID]/<lowercased word>.<format>.
func AssetPath(baseDir, voiceID string, f Format, word string) string {
	name := cases.Lower(language.Und).String(strings.TrimSpace(word)) + "." + string(f)
	if voiceID == "" {
		return filepath.Join(baseDir, name)
	}
	return filepath.Join(baseDir, voiceID, name)
}

var errBadWord = errors.New("word cannot name an audio file")

// RecordedAudio plays a pre-recorded file for the word.
type RecordedAudio struct {
	Player  Player
	BaseDir string
	VoiceID string
	Format  Format
}

func (r *RecordedAudio) Name() string { return "recorded-" + string(r.Format) }

func (r *RecordedAudio) Present(ctx context.Context, text string) error {
	word := strings.TrimSpace(text)
	if word == "" || strings.ContainsAny(word, `/\`) || strings.Contains(word, "..") {
		return fmt.Errorf("%w: %q", errBadWord, text)
	}
	return r.Player.Play(ctx, AssetPath(r.BaseDir, r.VoiceID, r.Format, word))
}
