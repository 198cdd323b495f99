package speech

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreferredVoice(t *testing.T) {
	voices := []Voice{
		{Name: "Alex", Lang: "en-US"},
		{Name: "Daniel", Lang: "en-GB"},
		{Name: "Samantha", Lang: "en-US"},
		{Name: "Amelie", Lang: "fr-CA"},
	}

	tests := []struct {
		name   string
		voices []Voice
		saved  string
		want   string
		ok     bool
	}{
		{"saved wins", voices, "Daniel", "Daniel", true},
		{"saved missing falls back to friendly", voices, "Zarvox", "Samantha", true},
		{"friendly default", voices, "", "Samantha", true},
		{"female english", []Voice{{Name: "en-m1", Lang: "en", Gender: "M"}, {Name: "en-f2", Lang: "en", Gender: "F"}}, "", "en-f2", true},
		{"female name must be english", []Voice{{Name: "Female FR", Lang: "fr-FR"}, {Name: "Fred", Lang: "en_US"}}, "", "Fred", true},
		{"first voice", []Voice{{Name: "Amelie", Lang: "fr-CA"}, {Name: "Anna", Lang: "de-DE"}}, "", "Amelie", true},
		{"none", nil, "Samantha", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PreferredVoice(tt.voices, tt.saved)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestEnglishVoices(t *testing.T) {
	got := EnglishVoices([]Voice{
		{Name: "Alex", Lang: "en-US"},
		{Name: "Amelie", Lang: "fr-CA"},
		{Name: "en-f2", Lang: "en"},
	})
	assert.Equal(t, []Voice{{Name: "Alex", Lang: "en-US"}, {Name: "en-f2", Lang: "en"}}, got)
}

func TestParseSayVoices(t *testing.T) {
	out := `Alex                en_US    # Most people recognize me by my voice.
Bad News            en_US    # The light you see at the end of the tunnel is the headlamp of a fast approaching train.
Amelie              fr_CA    # Bonjour, je m'appelle Amelie.
garbage line
`
	got := parseSayVoices(out)
	assert.Equal(t, []Voice{
		{Name: "Alex", Lang: "en-US"},
		{Name: "Bad News", Lang: "en-US"},
		{Name: "Amelie", Lang: "fr-CA"},
	}, got)
}

func TestParseEspeakVoices(t *testing.T) {
	out := `Pty Language       Age/Gender VoiceName          File                 Other Languages
 5  af              --/M      Afrikaans          gmw/af
 2  en-gb           --/M      English_(Great_Britain) gmw/en            (en 2)
 5  en-us           --/F      English_(America)  gmw/en-US            (en 8)
`
	got := parseEspeakVoices(out)
	assert.Equal(t, []Voice{
		{Name: "Afrikaans", Lang: "af", Gender: "M"},
		{Name: "English_(Great_Britain)", Lang: "en-gb", Gender: "M"},
		{Name: "English_(America)", Lang: "en-us", Gender: "F"},
	}, got)
}

func TestEngineArgs(t *testing.T) {
	u := Utterance{Text: "see", Voice: "Samantha", Rate: 0.75, Pitch: 1.1, Volume: 1}
	assert.Equal(t, []string{"-v", "Samantha", "-r", "131", "see"}, engineArgs(EngineSay, u))
	assert.Equal(t, []string{"-a", "100", "-s", "131", "-p", "55", "-v", "Samantha", "see"}, engineArgs(EngineEspeak, u))

	silent := Utterance{Text: "test", Rate: 1, Pitch: 1}
	assert.Equal(t, []string{"-r", "175", "[[volm 0]] test"}, engineArgs(EngineSay, silent))
	assert.Equal(t, []string{"-a", "0", "-s", "175", "-p", "50", "test"}, engineArgs(EngineEspeak, silent))
}

func TestResolveEngine(t *testing.T) {
	assert.Equal(t, EngineSay, ResolveEngine(EngineAuto, "darwin"))
	assert.Equal(t, EngineEspeak, ResolveEngine(EngineAuto, "linux"))
	assert.Equal(t, EngineNone, ResolveEngine(EngineNone, "darwin"))
	assert.Equal(t, EngineEspeak, ResolveEngine("", "windows"))
}
