// Package langdetect guesses the language of short free-text snippets such as
// purchase subjects. It is a deliberately small script-range heuristic, not a
// statistical model: callers treat Unknown as "no language recorded".
package langdetect

import "unicode"

// Unknown is returned when no guess can be made. Callers store it as an
// empty language code.
const Unknown = "UNKNOWN"

var scripts = []struct {
	rt   *unicode.RangeTable
	code string
}{
	{unicode.Cyrillic, "ru"},
	{unicode.Greek, "el"},
	{unicode.Hebrew, "he"},
	{unicode.Arabic, "ar"},
	{unicode.Thai, "th"},
	{unicode.Hangul, "ko"},
	{unicode.Hiragana, "ja"},
	{unicode.Katakana, "ja"},
	{unicode.Han, "zh"},
}

// Detect returns an ISO 639-1 code for text written in a script that maps to
// a single dominant language, or Unknown otherwise. Latin-script text is
// reported as Unknown since distinguishing e.g. English from German needs
// more context than a purchase subject provides.
func Detect(text string) string {
	counts := make(map[string]int, len(scripts))
	total := 0

	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		total++
		for _, s := range scripts {
			if unicode.Is(s.rt, r) {
				counts[s.code]++
				break
			}
		}
	}
	if total == 0 {
		return Unknown
	}

	best, bestN := Unknown, 0
	for code, n := range counts {
		if n > bestN {
			best, bestN = code, n
		}
	}

	// Require a clear majority of letters in one script.
	if bestN*2 <= total {
		return Unknown
	}
	return best
}
