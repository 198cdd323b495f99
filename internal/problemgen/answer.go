package problemgen

import (
	"strconv"
	"strings"
)

// TextPrefix forces input to be read as choice text, so "=3" selects the
// choice "3" wherever it sits.
const TextPrefix = "="

// CheckAnswer reports whether input selects the correct answer.
//
// A bare number from 1 to len(choices) is always a position. Anything
// else is choice text, optionally written after TextPrefix. Whitespace is
// trimmed and letter case is ignored, so "I" and "i" both select the
// sight word "I".
func CheckAnswer(input, answer string, choices []string) bool {
	picked, ok := Pick(input, choices)
	if !ok {
		return false
	}
	return picked == answer
}

// Pick resolves input to one of choices.
func Pick(input string, choices []string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}

	if idx, err := strconv.Atoi(input); err == nil && idx >= 1 && idx <= len(choices) {
		return choices[idx-1], true
	}
	if c, ok := matchText(input, choices); ok {
		return c, true
	}
	if text, ok := strings.CutPrefix(input, TextPrefix); ok {
		return matchText(strings.TrimSpace(text), choices)
	}
	return "", false
}

func matchText(text string, choices []string) (string, bool) {
	if text == "" {
		return "", false
	}
	for _, c := range choices {
		if c == text {
			return c, true
		}
	}
	for _, c := range choices {
		if strings.EqualFold(c, text) {
			return c, true
		}
	}
	return "", false
}
