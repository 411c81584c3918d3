package extract

import (
	"regexp"
	"strings"
)

// Shared lexical primitives. Both the fact checker and the contradiction
// detectors work on the same token sets and negation cues, so they live here
// rather than in either consumer.

var (
	copulaVerbs  = []string{"is", "are", "was", "were", "has", "have"}
	citationCues = []string{"according to", "research", "study"}
	hedgeWords   = []string{"might", "could", "possibly", "perhaps", "maybe", "arguably"}

	negationWords = []string{"not", "never", "no", "none", "cannot"}

	stopwords = map[string]bool{
		"the": true, "a": true, "an": true, "and": true, "or": true,
		"but": true, "in": true, "on": true, "at": true, "to": true,
		"of": true, "for": true, "with": true, "by": true, "from": true,
		"as": true, "that": true, "this": true, "these": true, "those": true,
		"it": true, "its": true, "be": true, "been": true, "being": true,
		"is": true, "are": true, "was": true, "were": true, "has": true,
		"have": true, "had": true, "will": true, "would": true, "can": true,
	}

	wordPattern = regexp.MustCompile(`[A-Za-z0-9%]+`)
	yearPattern = regexp.MustCompile(`\b(1[0-9]{3}|20[0-9]{2})\b`)
)

// Tokenize lowercases text and splits it into word tokens.
func Tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// TokenSet builds a set of unique lowercase tokens.
func TokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range Tokenize(text) {
		set[tok] = true
	}
	return set
}

// Jaccard computes the Jaccard similarity of two token sets.
func Jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for tok := range a {
		if b[tok] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// HasNegation reports whether the text contains a negation word.
func HasNegation(text string) bool {
	set := TokenSet(text)
	for _, neg := range negationWords {
		if set[neg] {
			return true
		}
	}
	// "is not" contractions
	lower := strings.ToLower(text)
	return strings.Contains(lower, "n't")
}

// Years extracts 4-digit year tokens (1000-2099) from the text.
func Years(text string) []int {
	var years []int
	for _, m := range yearPattern.FindAllString(text, -1) {
		y := 0
		for _, r := range m {
			y = y*10 + int(r-'0')
		}
		years = append(years, y)
	}
	return years
}

// Hedged reports whether the text uses hedging language.
func Hedged(text string) bool {
	set := TokenSet(text)
	for _, h := range hedgeWords {
		if set[h] {
			return true
		}
	}
	return false
}

// containsAny reports whether the lowercase form of text contains any of the
// given phrases.
func containsAny(text string, phrases []string) bool {
	lower := strings.ToLower(text)
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// hasDigit reports whether the text contains a decimal digit.
func hasDigit(text string) bool {
	for _, r := range text {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
