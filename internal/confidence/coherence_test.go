package confidence

import (
	"testing"

	"github.com/ppiankov/credence/internal/model"
)

func TestEvaluateCoherence_ConnectedProse(t *testing.T) {
	s := NewScorer(model.ConfidenceConfig{})
	content := "The experiment measured heat transfer. Therefore the result was conclusive. However, further trials are planned."

	report := s.EvaluateCoherence(content)
	if report.Logical <= 0.5 {
		t.Errorf("Expected logical score above 0.5 for connector-rich prose, got %.2f", report.Logical)
	}
	if report.Overall < 0 || report.Overall > 1 {
		t.Errorf("Expected overall in [0,1], got %.2f", report.Overall)
	}
}

func TestEvaluateCoherence_SelfArguingText(t *testing.T) {
	s := NewScorer(model.ConfidenceConfig{})
	// Half the sentences negate: reads as the response arguing with itself.
	mixed := "The method works. The method does not work. The data is clean. The data is not clean."
	plain := "The method works. The data is clean. The results are stable. The study is complete."

	mixedReport := s.EvaluateCoherence(mixed)
	plainReport := s.EvaluateCoherence(plain)
	if mixedReport.Consistency >= plainReport.Consistency {
		t.Errorf("Expected lower consistency for mixed text: %.2f vs %.2f",
			mixedReport.Consistency, plainReport.Consistency)
	}
}

func TestEvaluateCoherence_EmptyContent(t *testing.T) {
	s := NewScorer(model.ConfidenceConfig{})
	report := s.EvaluateCoherence("")
	if report.Logical != 0.5 {
		t.Errorf("Expected neutral logical score for empty content, got %.2f", report.Logical)
	}
}

func TestSuggestFollowUps_RankedAndCapped(t *testing.T) {
	s := NewScorer(model.ConfidenceConfig{})
	score := model.ConfidenceScore{Overall: 0.85}

	questions := s.SuggestFollowUps(score, 3)
	if len(questions) != 3 {
		t.Fatalf("Expected 3 questions, got %d", len(questions))
	}
	for i := 1; i < len(questions); i++ {
		prev := questions[i-1].Priority * questions[i-1].EstimatedValue
		cur := questions[i].Priority * questions[i].EstimatedValue
		if cur > prev {
			t.Errorf("Expected descending rank, got %.2f before %.2f", prev, cur)
		}
	}
}

func TestSuggestFollowUps_LowConfidencePromotesVerification(t *testing.T) {
	s := NewScorer(model.ConfidenceConfig{})
	questions := s.SuggestFollowUps(model.ConfidenceScore{Overall: 0.3}, 2)

	for _, q := range questions {
		if q.Category != "verification" && q.Category != "fact_check" {
			t.Errorf("Expected verification or fact_check questions first, got %s", q.Category)
		}
	}
}
