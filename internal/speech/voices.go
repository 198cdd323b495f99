package speech

import (
	"bufio"
	"regexp"
	"strings"
)

// Voice is a synthesis voice offered by the engine.
type Voice struct {
	Name   string
	Lang   string // BCP 47 style, e.g. "en-US"
	Gender string // "F", "M" or empty when unknown
}

// friendlyVoices are matched by substring, in order, when no voice was
// saved. They are the warm default voices on common platforms.
var friendlyVoices = []string{"Samantha", "Zira", "Google US English Female"}

// PreferredVoice picks the voice to speak with: the saved voice when it is
// still installed, else a friendly default, else any US English voice,
// else the first voice. ok is false when voices is empty.
func PreferredVoice(voices []Voice, saved string) (Voice, bool) {
	if len(voices) == 0 {
		return Voice{}, false
	}
	if saved != "" {
		for _, v := range voices {
			if v.Name == saved {
				return v, true
			}
		}
	}
	for _, v := range voices {
		if isFriendly(v) {
			return v, true
		}
	}
	for _, v := range voices {
		if strings.HasPrefix(strings.ToLower(normalizeLang(v.Lang)), "en-us") {
			return v, true
		}
	}
	return voices[0], true
}

func isFriendly(v Voice) bool {
	for _, name := range friendlyVoices {
		if strings.Contains(v.Name, name) {
			return true
		}
	}
	if !isEnglish(v) {
		return false
	}
	return strings.Contains(strings.ToLower(v.Name), "female") || v.Gender == "F"
}

// EnglishVoices filters voices to English ones.
func EnglishVoices(voices []Voice) []Voice {
	var out []Voice
	for _, v := range voices {
		if isEnglish(v) {
			out = append(out, v)
		}
	}
	return out
}

func isEnglish(v Voice) bool {
	return strings.HasPrefix(strings.ToLower(v.Lang), "en")
}

func normalizeLang(lang string) string {
	return strings.ReplaceAll(lang, "_", "-")
}

// sayVoiceLine matches `say -v ?` output:
//
//	Samantha            en_US    # Hello, my name is Samantha.
var sayVoiceLine = regexp.MustCompile(`^(.+?)\s+([a-z]{2,3}[_-][A-Za-z0-9]+)\s+#`)

// parseSayVoices parses the voice list printed by macOS `say -v ?`.
func parseSayVoices(out string) []Voice {
	var voices []Voice
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		m := sayVoiceLine.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		voices = append(voices, Voice{
			Name: strings.TrimSpace(m[1]),
			Lang: normalizeLang(m[2]),
		})
	}
	return voices
}

// parseEspeakVoices parses the table printed by `espeak-ng --voices`:
//
//	Pty Language       Age/Gender VoiceName          File          Other Languages
//	 5  en-us           --/M      English_(America)  gmw/en-US     (en 8)
func parseEspeakVoices(out string) []Voice {
	var voices []Voice
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		f := strings.Fields(sc.Text())
		if len(f) < 4 || f[0] == "Pty" {
			continue
		}
		gender := ""
		if _, g, ok := strings.Cut(f[2], "/"); ok && (g == "F" || g == "M") {
			gender = g
		}
		voices = append(voices, Voice{
			Name:   f[3],
			Lang:   f[1],
			Gender: gender,
		})
	}
	return voices
}
