package extract

import (
	"fmt"
	"strings"

	"github.com/ppiankov/credence/internal/model"
)

// ClaimExtractor turns response text into classified claims. The default
// implementation is lexical; a model-backed extractor can be swapped in
// without touching the pipeline.
type ClaimExtractor interface {
	Extract(content string) []model.Claim
}

// LexicalExtractor extracts claims with keyword and pattern heuristics.
type LexicalExtractor struct{}

// NewLexicalExtractor creates the default claim extractor.
func NewLexicalExtractor() *LexicalExtractor {
	return &LexicalExtractor{}
}

// Extract splits content into sentences, keeps the ones that read like
// factual assertions, and classifies them. Claim ids are deterministic per
// response so repeated evaluations of identical input agree.
func (e *LexicalExtractor) Extract(content string) []model.Claim {
	sentences := SplitSentences(content)

	var claims []model.Claim
	for i, sentence := range sentences {
		if !isClaim(sentence) {
			continue
		}
		claims = append(claims, model.Claim{
			ID:         fmt.Sprintf("claim-%d", len(claims)+1),
			Text:       sentence,
			Type:       classify(sentence),
			Confidence: claimConfidence(sentence),
			Entities:   Entities(sentence),
			Keywords:   keywords(sentence),
			Sentence:   i,
		})
	}
	return claims
}

// SplitSentences splits text on sentence-terminal punctuation, retaining
// non-empty trimmed segments.
func SplitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder
	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(current.String()); s != "" && s != "." && s != "!" && s != "?" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// isClaim reports whether a sentence qualifies as a factual claim: it
// contains a copula/possessive verb, a digit, or a citation cue.
func isClaim(sentence string) bool {
	if hasDigit(sentence) {
		return true
	}
	if containsAny(sentence, citationCues) {
		return true
	}
	set := TokenSet(sentence)
	for _, v := range copulaVerbs {
		if set[v] {
			return true
		}
	}
	return false
}

// classify assigns a fact type by keyword precedence.
func classify(sentence string) model.ClaimType {
	switch {
	case hasDigit(sentence):
		return model.ClaimNumerical
	case containsAny(sentence, []string{"percent", "%", "rate", "average", "statistic", "proportion"}):
		return model.ClaimStatistical
	case containsAny(sentence, []string{"year", "century", "decade", "era", "ancient", "medieval", "historic"}):
		return model.ClaimHistorical
	case containsAny(sentence, []string{"theory", "experiment", "hypothesis", "scientific", "physics", "chemistry", "biology"}):
		return model.ClaimScientific
	case containsAny(sentence, []string{"defined as", "is defined", "means", "refers to"}):
		return model.ClaimDefinition
	default:
		return model.ClaimFactual
	}
}

// claimConfidence scores how confidently the sentence asserts its content:
// base 0.6, +0.1 for digits, +0.1 for citation cues, -0.2 for hedging,
// clamped to [0.1, 1.0].
func claimConfidence(sentence string) float64 {
	conf := 0.6
	if hasDigit(sentence) {
		conf += 0.1
	}
	if containsAny(sentence, citationCues) {
		conf += 0.1
	}
	if Hedged(sentence) {
		conf -= 0.2
	}
	if conf < 0.1 {
		conf = 0.1
	}
	if conf > 1.0 {
		conf = 1.0
	}
	return conf
}

// keywords returns the lowercase content words of a sentence, stopwords and
// short tokens removed, deduplicated in order of first appearance.
func keywords(sentence string) []string {
	seen := make(map[string]bool)
	var kws []string
	for _, tok := range Tokenize(sentence) {
		if len(tok) <= 3 || stopwords[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		kws = append(kws, tok)
	}
	return kws
}
