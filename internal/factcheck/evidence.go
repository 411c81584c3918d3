package factcheck

import (
	"fmt"

	"github.com/ppiankov/credence/internal/extract"
	"github.com/ppiankov/credence/internal/model"
)

const excerptLimit = 160

// evidenceScan is the outcome of scanning the supplied context for one claim.
type evidenceScan struct {
	Supporting    []model.Evidence
	Contradicting []model.Evidence
	SupportScore  float64 // Highest supporting weight
	ContraScore   float64 // Highest contradicting weight
}

// scanContext scans knowledge base, external sources and (at enhanced level)
// conversation history for lexical overlap with the claim. Items above the
// support threshold count as supporting evidence; very-high-similarity items
// that differ on negation count as contradicting evidence instead.
func (c *Checker) scanContext(claim model.Claim, ectx model.Context, level model.VerificationLevel) evidenceScan {
	claimTokens := extract.TokenSet(claim.Text)
	claimNegated := extract.HasNegation(claim.Text)

	var scan evidenceScan
	consider := func(source, ref, text string, reliability float64) {
		if text == "" {
			return
		}
		if reliability <= 0 {
			reliability = 1.0
		}
		sim := extract.Jaccard(claimTokens, extract.TokenSet(text))
		if sim <= c.supportThreshold {
			return
		}
		ev := model.Evidence{
			Source:      source,
			Ref:         ref,
			Excerpt:     truncate(text, excerptLimit),
			Similarity:  sim,
			Reliability: reliability,
			Weight:      sim * reliability,
		}
		if sim > c.contraThreshold && extract.HasNegation(text) != claimNegated {
			scan.Contradicting = append(scan.Contradicting, ev)
			if ev.Weight > scan.ContraScore {
				scan.ContraScore = ev.Weight
			}
			return
		}
		scan.Supporting = append(scan.Supporting, ev)
		if ev.Weight > scan.SupportScore {
			scan.SupportScore = ev.Weight
		}
	}

	for _, item := range ectx.KnowledgeBase {
		consider("knowledge_base", item.ID, item.Content, item.Reliability)
	}
	if level == model.VerifyStandard || level == model.VerifyEnhanced {
		for _, src := range ectx.ExternalSources {
			text := src.Content
			if text == "" {
				text = src.Title
			}
			consider("external_source", src.URL, text, src.Reliability)
		}
	}
	if level == model.VerifyEnhanced {
		for i, turn := range ectx.ConversationHistory {
			consider("history", fmt.Sprintf("turn-%d", i), turn.Content, 1.0)
		}
	}
	return scan
}

// statusFor derives the verification status from the balance of supporting
// and contradicting weighted scores. The "scores within 0.2" disputed branch
// only applies when contradicting evidence exists, otherwise claims with no
// evidence at all would read as disputed.
func statusFor(scan evidenceScan) model.VerificationStatus {
	switch {
	case scan.SupportScore >= 0.7 && scan.ContraScore < 0.3:
		return model.StatusVerified
	case scan.ContraScore >= 0.5:
		return model.StatusDisputed
	case scan.ContraScore > 0 && abs(scan.SupportScore-scan.ContraScore) <= 0.2:
		return model.StatusDisputed
	case scan.SupportScore >= 0.3:
		return model.StatusInconclusive
	default:
		return model.StatusUnverified
	}
}

// confidenceFor blends the evidence balance into a per-claim confidence.
// Formula: clamp(0.4 + 0.5*support - 0.4*contra); a claim with no evidence
// falls back to half its extraction confidence.
func confidenceFor(claim model.Claim, scan evidenceScan) float64 {
	if len(scan.Supporting) == 0 && len(scan.Contradicting) == 0 {
		return model.Clamp01(claim.Confidence * 0.5)
	}
	return model.Clamp01(0.4 + 0.5*scan.SupportScore - 0.4*scan.ContraScore)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
