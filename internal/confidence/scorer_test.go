package confidence

import (
	"testing"
	"time"

	"github.com/ppiankov/credence/internal/model"
)

func fixedScorer() *Scorer {
	s := NewScorer(model.ConfidenceConfig{})
	s.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	return s
}

func TestCalculate_StrongResponse(t *testing.T) {
	s := fixedScorer()

	response := model.Response{
		ID:      "r1",
		Content: "According to research, the method works. However, it may not generalize in each case.",
	}
	ectx := model.Context{
		KnowledgeBase:       []model.KnowledgeItem{{ID: "kb-1", Content: "the method works"}},
		ConversationHistory: []model.HistoryEntry{{Role: "user", Content: "does the method work?"}},
		ExternalSources:     []model.ExternalSource{{URL: "https://example.org", Reliability: 1.0}},
		UserProfile:         &model.UserProfile{AcademicLevel: "undergraduate"},
	}
	summary := &model.FactCheckSummary{TotalClaims: 2, VerifiedClaims: 2, QualityScore: 1.0}

	score := s.Calculate(response, ectx, summary)

	if len(score.UncertaintyFactors) != 0 {
		t.Fatalf("Expected no uncertainty factors, got %+v", score.UncertaintyFactors)
	}
	if score.Overall < 0.87 || score.Overall > 0.89 {
		t.Errorf("Expected overall 0.88, got %v", score.Overall)
	}
	if score.Recommendation != model.RecommendAccept {
		t.Errorf("Expected accept, got %s", score.Recommendation)
	}
	if score.Level != model.ConfidenceVeryHigh {
		t.Errorf("Expected very_high, got %s", score.Level)
	}
}

func TestCalculate_OutdatedBareResponse(t *testing.T) {
	s := fixedScorer()

	response := model.Response{ID: "r1", Content: "In 1990 the factory produced widgets."}

	score := s.Calculate(response, model.Context{}, nil)

	if len(score.UncertaintyFactors) != 3 {
		t.Fatalf("Expected 3 uncertainty factors, got %+v", score.UncertaintyFactors)
	}
	criticals := 0
	for _, f := range score.UncertaintyFactors {
		if f.Critical() {
			criticals++
		}
	}
	if criticals != 1 {
		t.Errorf("Expected 1 critical factor (outdated), got %d", criticals)
	}
	if score.Recommendation != model.RecommendVerify {
		t.Errorf("Expected verify, got %s", score.Recommendation)
	}
	if score.Level != model.ConfidenceLow {
		t.Errorf("Expected low, got %s", score.Level)
	}
}

func TestCalculate_ByClaim(t *testing.T) {
	s := fixedScorer()

	summary := &model.FactCheckSummary{
		TotalClaims: 1,
		Results: []model.FactCheckResult{
			{ClaimID: "claim-1", Confidence: 0.75},
		},
	}
	score := s.Calculate(model.Response{Content: "The sky is blue."}, model.Context{}, summary)

	if score.ByClaim["claim-1"] != 0.75 {
		t.Errorf("Expected per-claim confidence 0.75, got %v", score.ByClaim["claim-1"])
	}
}

func TestTemporalScore(t *testing.T) {
	s := fixedScorer()

	if got := s.temporalScore("The survey ran in 2024."); got != 0.6 {
		t.Errorf("Expected 0.6 for a recent year, got %v", got)
	}
	if got := s.temporalScore("The survey ran in 2010."); got != 0.8 {
		t.Errorf("Expected 0.8 for an old year, got %v", got)
	}
	if got := s.temporalScore("The survey ran last spring."); got != 0.8 {
		t.Errorf("Expected 0.8 for timeless content, got %v", got)
	}
}

func TestDetectUncertainty_VagueQuantifiers(t *testing.T) {
	s := fixedScorer()

	// 3 vague quantifiers out of 12 tokens is well above the threshold.
	content := "Many experts say some results are often better than expected overall anyway."
	factors := s.detectUncertainty(content, model.Context{
		ConversationHistory: []model.HistoryEntry{{Role: "user", Content: "hi"}},
	})

	found := false
	for _, f := range factors {
		if f.Type == "ambiguous_claim" {
			found = true
			if f.Impact != 0.5 {
				t.Errorf("Expected impact 0.5, got %v", f.Impact)
			}
		}
		if f.Type == "incomplete_context" {
			t.Error("Did not expect incomplete_context with history present")
		}
	}
	if !found {
		t.Errorf("Expected ambiguous_claim factor, got %+v", factors)
	}
}

func TestRecommendationFor(t *testing.T) {
	tests := []struct {
		overall   float64
		criticals int
		want      model.Recommendation
	}{
		{0.85, 0, model.RecommendAccept},
		{0.85, 1, model.RecommendReview},
		{0.7, 1, model.RecommendReview},
		{0.7, 2, model.RecommendVerify},
		{0.45, 0, model.RecommendVerify},
		{0.25, 0, model.RecommendRequestHuman},
		{0.1, 0, model.RecommendReject},
	}
	for _, tt := range tests {
		if got := RecommendationFor(tt.overall, tt.criticals); got != tt.want {
			t.Errorf("RecommendationFor(%v, %d) = %s, want %s", tt.overall, tt.criticals, got, tt.want)
		}
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		overall float64
		want    model.ConfidenceLevel
	}{
		{0.9, model.ConfidenceVeryHigh},
		{0.8, model.ConfidenceVeryHigh},
		{0.7, model.ConfidenceHigh},
		{0.55, model.ConfidenceMedium},
		{0.3, model.ConfidenceLow},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.overall); got != tt.want {
			t.Errorf("LevelFor(%v) = %s, want %s", tt.overall, got, tt.want)
		}
	}
}
