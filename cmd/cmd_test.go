package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv isolates config and data from the developer's machine and makes
// rounds run without pauses. It returns a fresh database path.
func setupEnv(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("SCHOOLHELPER_DB", "")
	t.Setenv("SCHOOLHELPER_DB_URL", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SCHOOLHELPER_SPEECH_ENGINE", "none")
	t.Setenv("SCHOOLHELPER_ROUND_CORRECT_DELAY", "1ms")
	t.Setenv("SCHOOLHELPER_ROUND_WRONG_DELAY", "1ms")
	t.Setenv("SCHOOLHELPER_ROUND_SPEAK_DELAY", "1ms")
	t.Setenv("SCHOOLHELPER_DISPLAY_DURATION", "1ms")
	return filepath.Join(t.TempDir(), "test.db")
}

// resetFlags restores every flag in the tree; the commands are package
// globals and keep values between executions.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return ansi.Strip(out.String()), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "schoolhelper")
}

func TestPlayMath_FullRound(t *testing.T) {
	db := setupEnv(t)

	out, err := execute(t, "zz\n1\n1\n", "play", "math", "--db", db, "--player", "Maya", "--questions", "2", "--mute")
	require.NoError(t, err)
	assert.Contains(t, out, "Math Drill (easy)")
	assert.Contains(t, out, "Round over:")
	assert.Contains(t, out, "/2 (")
	assert.NotContains(t, out, "not saved")

	out, err = execute(t, "", "history", "--db", db, "--player", "Maya")
	require.NoError(t, err)
	assert.Contains(t, out, "math (easy)")
	assert.NotContains(t, out, "No rounds played yet.")

	out, err = execute(t, "", "players", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Maya")
	assert.Contains(t, out, "(last played)")

	out, err = execute(t, "", "trophies", "--db", db)
	require.NoError(t, err, "trophies defaults to the last player")
	assert.Contains(t, out, "Maya's trophies")
}

func TestPlay_QuitDoesNotRecord(t *testing.T) {
	db := setupEnv(t)

	out, err := execute(t, "quit\n", "play", "numbers", "--mode", "compare", "--db", db, "--player", "Ada", "--mute")
	require.NoError(t, err)
	assert.Contains(t, out, "See you next time!")
	assert.NotContains(t, out, "Round over:")

	out, err = execute(t, "", "history", "--db", db, "--player", "Ada")
	require.NoError(t, err)
	assert.Contains(t, out, "No rounds played yet.")
}

func TestPlay_EndOfInputQuits(t *testing.T) {
	db := setupEnv(t)

	out, err := execute(t, "", "play", "math", "--db", db, "--mute")
	require.NoError(t, err)
	assert.Contains(t, out, "Player 1")
	assert.Contains(t, out, "See you next time!")
}

func TestPlayWords_CustomVocabulary(t *testing.T) {
	db := setupEnv(t)
	vocabFile := filepath.Join(t.TempDir(), "words.yaml")
	require.NoError(t, os.WriteFile(vocabFile, []byte("name: Test\nwords: [cat, dog, sun, hat]\n"), 0o644))

	out, err := execute(t, "1\n", "play", "words", "--vocab", vocabFile, "--db", db, "--questions", "1", "--mute")
	require.NoError(t, err)
	assert.Contains(t, out, "Sight Words")
	assert.Contains(t, out, "Round over: ")

	out, err = execute(t, "", "history", "--db", db)
	require.NoError(t, err)
	assert.NotContains(t, out, "No rounds played yet.")
}

func TestPlay_UnreachableDatabaseStillPlays(t *testing.T) {
	setupEnv(t)
	t.Setenv("SCHOOLHELPER_DB_URL", "postgres://u:p@127.0.0.1:1/school")

	out, err := execute(t, "1\n2\n", "play", "math", "--questions", "2", "--mute")
	require.NoError(t, err)
	assert.Contains(t, out, "Player 1")
	assert.Contains(t, out, "Round over: ")
	assert.Contains(t, out, "This round was not saved.")
	assert.NotContains(t, out, "already in your collection")

	out, err = execute(t, "", "settings", "say", "cat", "--mute")
	require.NoError(t, err)
	assert.Contains(t, out, "via visual")

	_, err = execute(t, "", "history")
	assert.Error(t, err, "commands that read stored data still need the database")
}

func TestEOFAsKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "\x04"},
		{"1\n", "1\n\x04"},
		{"quit\n2\n", "quit\n2\n\x04"},
	}
	for _, tt := range tests {
		got, err := io.ReadAll(&eofAsKey{r: strings.NewReader(tt.in)})
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(got))
	}

	// A read that fills the buffer exactly still gets the key on the next call.
	r := &eofAsKey{r: strings.NewReader("ab")}
	buf := make([]byte, 2)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	n, err = r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04}, buf[:n])
	_, err = r.Read(buf)
	assert.ErrorIs(t, err, io.EOF)
}

func TestPlayWords_InvalidVocabulary(t *testing.T) {
	db := setupEnv(t)
	vocabFile := filepath.Join(t.TempDir(), "words.yaml")
	require.NoError(t, os.WriteFile(vocabFile, []byte("words: [cat]\n"), 0o644))

	_, err := execute(t, "", "play", "words", "--vocab", vocabFile, "--db", db)
	assert.Error(t, err)
}

func TestPlay_InvalidOptions(t *testing.T) {
	db := setupEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{"difficulty", []string{"play", "math", "--difficulty", "extreme", "--db", db}},
		{"mode", []string{"play", "numbers", "--mode", "spell", "--db", db}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			assert.Error(t, err)
		})
	}
	_, err := os.Stat(db)
	assert.True(t, os.IsNotExist(err), "invalid options must not open the database")
}

func TestLookupPlayer_Errors(t *testing.T) {
	db := setupEnv(t)

	_, err := execute(t, "", "trophies", "--db", db)
	assert.ErrorContains(t, err, "no player yet")

	_, err = execute(t, "", "history", "--db", db, "--player", "Nobody")
	assert.ErrorContains(t, err, `no player named "Nobody"`)
}

func TestSettings(t *testing.T) {
	db := setupEnv(t)

	out, err := execute(t, "", "settings", "voice", "Zira", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Speech voice set to Zira")

	out, err = execute(t, "", "settings", "audio-voice", "kid-1", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Audio voice set to kid-1")

	out, err = execute(t, "", "settings", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Zira")
	assert.Contains(t, out, "kid-1")
	assert.Contains(t, out, "mp3")

	_, err = execute(t, "", "settings", "voice", "  ", "--db", db)
	assert.Error(t, err)
}

func TestSettingsSay_VisualFallback(t *testing.T) {
	db := setupEnv(t)

	out, err := execute(t, "", "settings", "say", "--mute", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, sampleSentence)
	assert.Contains(t, out, "via visual")

	out, err = execute(t, "", "settings", "say", "hello", "there", "--mute", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "hello there")
}
