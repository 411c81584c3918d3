package contradict

import (
	"strings"

	"github.com/ppiankov/credence/internal/extract"
	"github.com/ppiankov/credence/internal/model"
)

// PairScorer scores how strongly two claims contradict each other. The
// default is lexical; a model-backed scorer can replace it without touching
// detection or fusion.
type PairScorer interface {
	Score(a, b model.Claim) float64
}

// Opposing word pairs. A pair matches when one claim contains the left word
// and the other the right word (either direction).
var (
	quantifierPairs = [][2]string{
		{"all", "none"},
		{"always", "never"},
		{"every", "no"},
		{"everyone", "nobody"},
	}
	directionalPairs = [][2]string{
		{"increase", "decrease"},
		{"increased", "decreased"},
		{"before", "after"},
		{"rise", "fall"},
		{"higher", "lower"},
		{"more", "less"},
	}
)

// LexicalScorer scores claim pairs with additive lexical heuristics:
// negation mismatch +0.4, each opposed quantifier pair +0.3, shared named
// entities +0.2, opposed directional words +0.2, capped at 1.0. Every
// heuristic is order-independent, so Score(a,b) == Score(b,a).
type LexicalScorer struct{}

// NewLexicalScorer creates the default pair scorer.
func NewLexicalScorer() *LexicalScorer {
	return &LexicalScorer{}
}

// Score computes the symmetric contradiction score for a claim pair.
func (s *LexicalScorer) Score(a, b model.Claim) float64 {
	if strings.EqualFold(strings.TrimSpace(a.Text), strings.TrimSpace(b.Text)) {
		return 0
	}

	score := 0.0
	if extract.HasNegation(a.Text) != extract.HasNegation(b.Text) {
		score += 0.4
	}

	aTokens := extract.TokenSet(a.Text)
	bTokens := extract.TokenSet(b.Text)
	for _, pair := range quantifierPairs {
		if opposed(aTokens, bTokens, pair) {
			score += 0.3
		}
	}
	if len(extract.SharedEntities(a.Entities, b.Entities)) > 0 {
		score += 0.2
	}
	for _, pair := range directionalPairs {
		if opposed(aTokens, bTokens, pair) {
			score += 0.2
			break
		}
	}

	return model.Clamp01(score)
}

// opposed reports whether the pair's words split across the two token sets.
func opposed(a, b map[string]bool, pair [2]string) bool {
	return (a[pair[0]] && b[pair[1]]) || (a[pair[1]] && b[pair[0]])
}
