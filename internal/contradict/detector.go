package contradict

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/ppiankov/credence/internal/extract"
	"github.com/ppiankov/credence/internal/model"
)

// Logical antonym table: assertions that cannot both hold when the claims
// talk about the same subject.
var antonymPatterns = [][2]string{
	{"all", "none"},
	{"always", "never"},
	{"every", "no"},
	{"must", "cannot"},
	{"is", "is not"},
}

// Detector finds contradictions within a response and between the response
// and its context. Five detectors run independently; their merged output is
// sorted by score and capped.
type Detector struct {
	scorer      PairScorer
	maxReported int
}

// NewDetector creates a detector with the default lexical pair scorer.
func NewDetector(cfg model.ContradictionConfig) *Detector {
	maxReported := cfg.MaxReported
	if maxReported <= 0 {
		maxReported = 20
	}
	return &Detector{scorer: NewLexicalScorer(), maxReported: maxReported}
}

// WithScorer swaps the pair-scoring strategy.
func (d *Detector) WithScorer(scorer PairScorer) *Detector {
	d.scorer = scorer
	return d
}

// Detect runs all five detectors over the extracted claims. Fewer than two
// claims yields an empty, non-error report. Contradictions scoring below
// threshold are discarded.
func (d *Detector) Detect(claims []model.Claim, ectx model.Context, threshold float64) model.ContradictionReport {
	report := model.ContradictionReport{ClaimsAnalyzed: len(claims)}
	if len(claims) < 2 {
		return report
	}
	if threshold <= 0 {
		threshold = 0.5
	}

	var found []model.Contradiction
	found = append(found, d.detectSelf(claims, threshold)...)
	found = append(found, d.detectCross(claims, ectx, threshold)...)
	found = append(found, d.detectTemporal(claims, threshold)...)
	found = append(found, d.detectLogical(claims, threshold)...)
	found = append(found, d.detectContextual(claims, ectx, threshold)...)

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Score > found[j].Score
	})
	if len(found) > d.maxReported {
		found = found[:d.maxReported]
	}

	report.Contradictions = found
	report.TotalContradictions = len(found)
	if len(found) > 0 {
		report.HighestScore = found[0].Score
	}
	return report
}

// detectSelf scores every claim pair within the response.
func (d *Detector) detectSelf(claims []model.Claim, threshold float64) []model.Contradiction {
	var out []model.Contradiction
	for i := 0; i < len(claims); i++ {
		for j := i + 1; j < len(claims); j++ {
			score := d.scorer.Score(claims[i], claims[j])
			if score < threshold {
				continue
			}
			out = append(out, d.build(model.ContradictionSelf, claims[i].Text, claims[j].Text, score))
		}
	}
	return out
}

// detectCross checks claims against knowledge base, history and external
// sources using the same similarity+negation heuristic as the fact checker.
func (d *Detector) detectCross(claims []model.Claim, ectx model.Context, threshold float64) []model.Contradiction {
	var items []string
	for _, kb := range ectx.KnowledgeBase {
		items = append(items, kb.Content)
	}
	for _, turn := range ectx.ConversationHistory {
		items = append(items, turn.Content)
	}
	for _, src := range ectx.ExternalSources {
		if src.Content != "" {
			items = append(items, src.Content)
		}
	}

	var out []model.Contradiction
	for _, claim := range claims {
		claimTokens := extract.TokenSet(claim.Text)
		for _, item := range items {
			for _, sentence := range extract.SplitSentences(item) {
				sim := extract.Jaccard(claimTokens, extract.TokenSet(sentence))
				if sim <= 0.6 {
					continue
				}
				pseudo := model.Claim{Text: sentence, Entities: extract.Entities(sentence)}
				score := d.scorer.Score(claim, pseudo)
				if score < threshold {
					continue
				}
				out = append(out, d.build(model.ContradictionCross, claim.Text, sentence, score))
			}
		}
	}
	return out
}

// detectTemporal flags claim pairs that talk about the same subject but
// carry disjoint year tokens: base score 0.5, +0.2 when the pair also
// disagrees on negation.
func (d *Detector) detectTemporal(claims []model.Claim, threshold float64) []model.Contradiction {
	var out []model.Contradiction
	for i := 0; i < len(claims); i++ {
		yearsA := extract.Years(claims[i].Text)
		if len(yearsA) == 0 {
			continue
		}
		for j := i + 1; j < len(claims); j++ {
			yearsB := extract.Years(claims[j].Text)
			if len(yearsB) == 0 {
				continue
			}
			if !sameSubject(claims[i], claims[j]) || sharesYear(yearsA, yearsB) {
				continue
			}
			score := 0.5
			if extract.HasNegation(claims[i].Text) != extract.HasNegation(claims[j].Text) {
				score += 0.2
			}
			if score < threshold {
				continue
			}
			out = append(out, d.build(model.ContradictionTemporal, claims[i].Text, claims[j].Text, score))
		}
	}
	return out
}

// detectLogical matches the fixed antonym table across same-subject pairs.
func (d *Detector) detectLogical(claims []model.Claim, threshold float64) []model.Contradiction {
	var out []model.Contradiction
	for i := 0; i < len(claims); i++ {
		lowerA := " " + strings.ToLower(claims[i].Text) + " "
		for j := i + 1; j < len(claims); j++ {
			if !sameSubject(claims[i], claims[j]) {
				continue
			}
			lowerB := " " + strings.ToLower(claims[j].Text) + " "
			for _, pair := range antonymPatterns {
				left := " " + pair[0] + " "
				right := " " + pair[1] + " "
				if (strings.Contains(lowerA, left) && strings.Contains(lowerB, right)) ||
					(strings.Contains(lowerA, right) && strings.Contains(lowerB, left)) {
					score := 0.6
					if score >= threshold {
						out = append(out, d.build(model.ContradictionLogical, claims[i].Text, claims[j].Text, score))
					}
					break
				}
			}
		}
	}
	return out
}

// detectContextual checks claims against the user profile's own statements
// and declared subjects.
func (d *Detector) detectContextual(claims []model.Claim, ectx model.Context, threshold float64) []model.Contradiction {
	if ectx.UserProfile == nil {
		return nil
	}

	var out []model.Contradiction
	for _, claim := range claims {
		claimTokens := extract.TokenSet(claim.Text)
		for _, stmt := range ectx.UserProfile.Statements {
			sim := extract.Jaccard(claimTokens, extract.TokenSet(stmt))
			if sim <= 0.5 {
				continue
			}
			pseudo := model.Claim{Text: stmt, Entities: extract.Entities(stmt)}
			score := d.scorer.Score(claim, pseudo)
			if score < threshold {
				continue
			}
			out = append(out, d.build(model.ContradictionContextual, claim.Text, stmt, score))
		}

		// A claim that negates one of the learner's declared subjects
		// conflicts with the profile even without a matching statement.
		if extract.HasNegation(claim.Text) {
			lower := strings.ToLower(claim.Text)
			for _, subject := range ectx.UserProfile.Subjects {
				if subject != "" && strings.Contains(lower, strings.ToLower(subject)) {
					score := 0.5
					if score >= threshold {
						out = append(out, d.build(model.ContradictionContextual, claim.Text,
							"declared subject: "+subject, score))
					}
				}
			}
		}
	}
	return out
}

func (d *Detector) build(ctype model.ContradictionType, a, b string, score float64) model.Contradiction {
	score = model.Clamp01(score)
	return model.Contradiction{
		ID:         uuid.NewString(),
		Type:       ctype,
		Severity:   model.SeverityForScore(score),
		Claim1:     a,
		Claim2:     b,
		Score:      score,
		Resolution: resolutionFor(ctype, score),
	}
}

// sameSubject reports whether two claims share at least two keywords or a
// named entity.
func sameSubject(a, b model.Claim) bool {
	if len(extract.SharedEntities(a.Entities, b.Entities)) > 0 {
		return true
	}
	inA := make(map[string]bool, len(a.Keywords))
	for _, k := range a.Keywords {
		inA[k] = true
	}
	shared := 0
	for _, k := range b.Keywords {
		if inA[k] {
			shared++
			if shared >= 2 {
				return true
			}
		}
	}
	return false
}

// sharesYear reports whether the two year lists intersect.
func sharesYear(a, b []int) bool {
	for _, ya := range a {
		for _, yb := range b {
			if ya == yb {
				return true
			}
		}
	}
	return false
}
