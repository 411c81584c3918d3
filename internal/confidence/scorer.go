package confidence

import (
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/credence/internal/extract"
	"github.com/ppiankov/credence/internal/model"
)

// Fixed fusion weights over the five confidence dimensions.
const (
	weightFactual        = 0.30
	weightContextual     = 0.25
	weightMethodological = 0.20
	weightTemporal       = 0.15
	weightSource         = 0.10
)

var (
	structureCues = []string{"first", "second", "finally", "therefore", "in conclusion", "for example", "however"}
	evidenceCues  = []string{"according to", "research", "study", "evidence", "data shows", "demonstrated"}
	limitationCues = []string{"limitation", "may not", "uncertain", "it depends", "not always", "beyond the scope"}
	vagueQuantifiers = []string{"some", "many", "often", "several", "various", "most", "few"}
)

// Scorer computes the multi-dimensional confidence assessment.
type Scorer struct {
	vaguenessThreshold float64
	recentYearWindow   int
	outdatedBefore     int
	now                func() time.Time // Injectable for the temporal checks
}

// NewScorer creates a scorer from configuration.
func NewScorer(cfg model.ConfidenceConfig) *Scorer {
	vagueness := cfg.VaguenessThreshold
	if vagueness <= 0 {
		vagueness = 0.04
	}
	window := cfg.RecentYearWindow
	if window <= 0 {
		window = 2
	}
	outdated := cfg.OutdatedBefore
	if outdated <= 0 {
		outdated = 2015
	}
	return &Scorer{
		vaguenessThreshold: vagueness,
		recentYearWindow:   window,
		outdatedBefore:     outdated,
		now:                time.Now,
	}
}

// Calculate fuses five sub-scores into an overall confidence, detects
// uncertainty factors, and derives the recommendation and tier. The summary
// may be nil when fact checking was skipped.
func (s *Scorer) Calculate(response model.Response, ectx model.Context, summary *model.FactCheckSummary) model.ConfidenceScore {
	byType := map[model.ConfidenceDimension]float64{
		model.DimFactual:           s.factualScore(summary),
		model.DimContextual:        s.contextualScore(ectx),
		model.DimMethodological:    s.methodologicalScore(response.Content),
		model.DimTemporal:          s.temporalScore(response.Content),
		model.DimSourceReliability: s.sourceScore(ectx),
	}

	factors := s.detectUncertainty(response.Content, ectx)

	overall := weightFactual*byType[model.DimFactual] +
		weightContextual*byType[model.DimContextual] +
		weightMethodological*byType[model.DimMethodological] +
		weightTemporal*byType[model.DimTemporal] +
		weightSource*byType[model.DimSourceReliability]
	for _, f := range factors {
		overall -= f.Impact * 0.1
	}
	overall = model.Clamp01(overall)

	criticals := 0
	for _, f := range factors {
		if f.Critical() {
			criticals++
		}
	}

	score := model.ConfidenceScore{
		Overall:            overall,
		ByType:             byType,
		UncertaintyFactors: factors,
		Recommendation:     RecommendationFor(overall, criticals),
		Level:              LevelFor(overall),
	}

	if summary != nil {
		score.ByClaim = make(map[string]float64, len(summary.Results))
		for _, r := range summary.Results {
			score.ByClaim[r.ClaimID] = r.Confidence
		}
	}
	return score
}

// factualScore derives from the fact-check quality, defaulting to 0.7 when
// fact checking was skipped or vacuous.
func (s *Scorer) factualScore(summary *model.FactCheckSummary) float64 {
	if summary == nil || summary.TotalClaims == 0 {
		return 0.7
	}
	return model.Clamp01(summary.QualityScore)
}

// contextualScore rewards the presence of each context kind.
func (s *Scorer) contextualScore(ectx model.Context) float64 {
	score := 0.5
	if ectx.UserProfile != nil {
		score += 0.1
	}
	if len(ectx.ConversationHistory) > 0 {
		score += 0.1
	}
	if len(ectx.KnowledgeBase) > 0 {
		score += 0.1
	}
	return model.Clamp01(score)
}

// methodologicalScore reads structural and evidentiary cues from the text.
func (s *Scorer) methodologicalScore(content string) float64 {
	score := 0.6
	if containsAnyFold(content, structureCues) {
		score += 0.1
	}
	if containsAnyFold(content, evidenceCues) {
		score += 0.1
	}
	if extract.Hedged(content) {
		score -= 0.1
	}
	return model.Clamp01(score)
}

// temporalScore treats time-sensitive content as less certain: recent-year
// tokens drop the score to 0.6, timeless content sits at 0.8.
func (s *Scorer) temporalScore(content string) float64 {
	currentYear := s.now().Year()
	for _, y := range extract.Years(content) {
		if y >= currentYear-s.recentYearWindow {
			return 0.6
		}
	}
	return 0.8
}

// sourceScore is the mean reliability of the supplied external sources,
// defaulting to 0.5 with none available.
func (s *Scorer) sourceScore(ectx model.Context) float64 {
	if len(ectx.ExternalSources) == 0 {
		return 0.5
	}
	var sum float64
	for _, src := range ectx.ExternalSources {
		sum += model.Clamp01(src.Reliability)
	}
	return model.Clamp01(sum / float64(len(ectx.ExternalSources)))
}

// detectUncertainty runs the independent factor detectors.
func (s *Scorer) detectUncertainty(content string, ectx model.Context) []model.UncertaintyFactor {
	var factors []model.UncertaintyFactor

	if !containsAnyFold(content, limitationCues) {
		factors = append(factors, model.UncertaintyFactor{
			Type:        "knowledge_gap",
			Impact:      0.6,
			Description: "response acknowledges no limitations",
		})
	}

	for _, y := range extract.Years(content) {
		if y < s.outdatedBefore {
			factors = append(factors, model.UncertaintyFactor{
				Type:        "outdated_information",
				Impact:      0.8,
				Description: fmt.Sprintf("references year %d, before %d", y, s.outdatedBefore),
			})
			break
		}
	}

	tokens := extract.Tokenize(content)
	if len(tokens) > 0 {
		vague := 0
		for _, tok := range tokens {
			for _, q := range vagueQuantifiers {
				if tok == q {
					vague++
					break
				}
			}
		}
		if density := float64(vague) / float64(len(tokens)); density > s.vaguenessThreshold {
			factors = append(factors, model.UncertaintyFactor{
				Type:        "ambiguous_claim",
				Impact:      0.5,
				Description: fmt.Sprintf("vague quantifier density %.3f exceeds %.3f", density, s.vaguenessThreshold),
			})
		}
	}

	if len(ectx.ConversationHistory) == 0 {
		factors = append(factors, model.UncertaintyFactor{
			Type:        "incomplete_context",
			Impact:      0.4,
			Description: "no conversation history supplied",
		})
	}
	return factors
}

// RecommendationFor is the step function from overall confidence and the
// count of critical uncertainty factors to the verdict.
func RecommendationFor(overall float64, criticals int) model.Recommendation {
	switch {
	case overall >= 0.8 && criticals == 0:
		return model.RecommendAccept
	case overall >= 0.6 && criticals < 2:
		return model.RecommendReview
	case overall >= 0.4:
		return model.RecommendVerify
	case overall >= 0.2:
		return model.RecommendRequestHuman
	default:
		return model.RecommendReject
	}
}

// LevelFor maps overall confidence to its coarse tier.
func LevelFor(overall float64) model.ConfidenceLevel {
	switch {
	case overall >= 0.8:
		return model.ConfidenceVeryHigh
	case overall >= 0.65:
		return model.ConfidenceHigh
	case overall >= 0.5:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}

func containsAnyFold(text string, phrases []string) bool {
	lower := strings.ToLower(text)
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
