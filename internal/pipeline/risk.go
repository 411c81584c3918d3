package pipeline

import (
	"math"

	"github.com/ppiankov/credence/internal/model"
)

// riskScore fuses stage outputs into an additive risk score. Each stage
// contributes a capped amount: validation up to 0.4, fact-check findings up
// to 0.5, confidence up to 0.5, contradictions up to 0.4.
func riskScore(result *model.AggregateResult) float64 {
	var score float64

	if v := result.Validation; v != nil {
		switch {
		case v.Score < 0.3:
			score += 0.4
		case v.Score < 0.5:
			score += 0.3
		case v.Score < 0.7:
			score += 0.15
		}
	}

	if fc := result.FactCheck; fc != nil && fc.TotalClaims > 0 {
		var facts float64
		if fc.UnverifiedClaims > fc.VerifiedClaims {
			facts += 0.3
		}
		if fc.ContradictoryClaims > 0 {
			facts += 0.2
		}
		score += math.Min(facts, 0.5)
	}

	if conf := result.Confidence; conf != nil {
		var c float64
		switch conf.Level {
		case model.ConfidenceLow:
			c += 0.3
		case model.ConfidenceMedium:
			c += 0.15
		}
		if conf.Recommendation == model.RecommendReject || conf.Recommendation == model.RecommendRequestHuman {
			c += 0.2
		}
		score += math.Min(c, 0.5)
	}

	if cd := result.Contradictions; cd != nil {
		var worst float64
		for _, c := range cd.Contradictions {
			switch c.Severity {
			case model.SeverityCritical:
				worst = math.Max(worst, 0.4)
			case model.SeverityHigh:
				worst = math.Max(worst, 0.25)
			}
		}
		score += worst
	}

	return score
}

// riskLevelFor bands the additive risk score at 0.8/0.6/0.3.
func riskLevelFor(score float64) model.RiskLevel {
	switch {
	case score >= 0.8:
		return model.RiskCritical
	case score >= 0.6:
		return model.RiskHigh
	case score >= 0.3:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}
