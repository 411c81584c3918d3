package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/ppiankov/credence/internal/audit"
	"github.com/ppiankov/credence/internal/model"
)

type panickingExtractor struct{}

func (panickingExtractor) Extract(string) []model.Claim {
	panic("extractor blew up")
}

func testResponse() model.Response {
	return model.Response{
		ID:      "resp-1",
		Content: "The sky is blue. Water boils at 100 degrees Celsius.",
	}
}

func testContext() model.Context {
	return model.Context{
		KnowledgeBase: []model.KnowledgeItem{
			{ID: "kb-1", Content: "The sky is blue.", Reliability: 1.0},
		},
	}
}

func TestEvaluate_BasicLevel(t *testing.T) {
	p := NewPipeline(nil)

	opts := model.DefaultOptions()
	opts.ValidationLevel = model.LevelBasic
	result := p.Evaluate(context.Background(), testResponse(), testContext(), opts)

	if result.Validation == nil {
		t.Fatal("Expected a validation report")
	}
	if result.FactCheck != nil || result.Confidence != nil || result.Contradictions != nil {
		t.Error("Expected only validation to run at basic level")
	}
	if len(result.Meta.ComponentsUsed) != 1 || result.Meta.ComponentsUsed[0] != "validation" {
		t.Errorf("Unexpected components: %v", result.Meta.ComponentsUsed)
	}
	if result.Recommendation == "" {
		t.Error("Expected a fallback recommendation")
	}
}

func TestEvaluate_StandardLevel(t *testing.T) {
	p := NewPipeline(nil)

	result := p.Evaluate(context.Background(), testResponse(), testContext(), model.DefaultOptions())

	if result.FactCheck == nil {
		t.Error("Expected fact checking at standard level")
	}
	if result.Confidence == nil {
		t.Error("Expected confidence scoring at standard level")
	}
	if result.Contradictions != nil {
		t.Error("Expected no contradiction detection below enhanced level")
	}
	if result.Recommendation != result.Confidence.Recommendation {
		t.Errorf("Expected verdict from confidence stage, got %s", result.Recommendation)
	}
	if result.OverallQuality <= 0 {
		t.Errorf("Expected positive overall quality, got %v", result.OverallQuality)
	}
}

func TestEvaluate_EnhancedLevel(t *testing.T) {
	p := NewPipeline(nil)

	opts := model.DefaultOptions()
	opts.ValidationLevel = model.LevelEnhanced
	result := p.Evaluate(context.Background(), testResponse(), testContext(), opts)

	if result.Contradictions == nil {
		t.Fatal("Expected a contradiction report at enhanced level")
	}
	if result.Contradictions.ClaimsAnalyzed == 0 {
		t.Error("Expected claims to be analyzed")
	}
}

func TestEvaluate_ResultCacheHit(t *testing.T) {
	p := NewPipeline(nil)

	first := p.Evaluate(context.Background(), testResponse(), testContext(), model.DefaultOptions())
	second := p.Evaluate(context.Background(), testResponse(), testContext(), model.DefaultOptions())

	if first.Meta.FromCache {
		t.Error("Expected first evaluation to be computed")
	}
	if !second.Meta.FromCache {
		t.Error("Expected second evaluation to come from cache")
	}
	if first.Meta.RequestID != second.Meta.RequestID {
		t.Error("Expected cached result to preserve the original request id")
	}
}

func TestEvaluate_CacheIsLevelScoped(t *testing.T) {
	p := NewPipeline(nil)

	standard := model.DefaultOptions()
	enhanced := model.DefaultOptions()
	enhanced.ValidationLevel = model.LevelEnhanced

	p.Evaluate(context.Background(), testResponse(), testContext(), standard)
	result := p.Evaluate(context.Background(), testResponse(), testContext(), enhanced)

	if result.Meta.FromCache {
		t.Error("Expected a different level to miss the cache")
	}
}

func TestEvaluate_CacheExpiry(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Pipeline.ResultTTL = 20 * time.Millisecond
	p := NewPipeline(cfg)

	first := p.Evaluate(context.Background(), testResponse(), testContext(), model.DefaultOptions())
	time.Sleep(40 * time.Millisecond)
	p.ResultCache().Sweep()
	second := p.Evaluate(context.Background(), testResponse(), testContext(), model.DefaultOptions())

	if second.Meta.FromCache {
		t.Error("Expected expired entry to be recomputed")
	}
	if first.Meta.RequestID == second.Meta.RequestID {
		t.Error("Expected a fresh request id after expiry")
	}
}

func TestEvaluate_StrictModeRejects(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Pipeline.StrictMode = true
	cfg.Validator.BannedTerms = []string{"miracle cure"}
	p := NewPipeline(cfg)

	response := model.Response{ID: "resp-2", Content: "This miracle cure fixes everything instantly."}
	result := p.Evaluate(context.Background(), response, model.Context{}, model.DefaultOptions())

	if result.Recommendation != model.RecommendReject {
		t.Errorf("Expected reject, got %s", result.Recommendation)
	}
	if result.FactCheck != nil || result.Confidence != nil {
		t.Error("Expected later stages to be skipped in strict mode")
	}
	critical := false
	for _, issue := range result.Issues {
		if issue.Severity == model.IssueCritical {
			critical = true
		}
	}
	if !critical {
		t.Error("Expected a critical validation issue")
	}
}

func TestEvaluate_NeverPanics(t *testing.T) {
	p := NewPipeline(nil).WithExtractor(panickingExtractor{})

	result := p.Evaluate(context.Background(), testResponse(), testContext(), model.DefaultOptions())

	if result == nil {
		t.Fatal("Expected a synthetic result")
	}
	if result.Recommendation != model.RecommendReject {
		t.Errorf("Expected reject, got %s", result.Recommendation)
	}
	if result.RiskLevel != model.RiskCritical {
		t.Errorf("Expected critical risk, got %s", result.RiskLevel)
	}
	if len(result.Issues) == 0 || result.Issues[0].Stage != "system" {
		t.Errorf("Expected a system issue, got %+v", result.Issues)
	}
}

func TestEvaluate_DeadlineSkipsStages(t *testing.T) {
	opts := model.DefaultOptions()
	opts.MaxProcessingTime = time.Nanosecond

	p := NewPipeline(nil)
	result := p.Evaluate(context.Background(), testResponse(), testContext(), opts)

	if result.Validation == nil {
		t.Error("Expected validation to have completed before the deadline check")
	}
	deadline := false
	for _, issue := range result.Issues {
		if issue.Stage == "system" {
			deadline = true
		}
	}
	if !deadline {
		t.Error("Expected a deadline issue")
	}
	if result.Recommendation == "" {
		t.Error("Expected a verdict despite the deadline")
	}
}

func TestEvaluate_AuditRecord(t *testing.T) {
	sink := audit.NewMemorySink()
	p := NewPipeline(nil).WithAuditQueue(audit.NewQueue(sink, 8, 2))
	p.Start()

	p.Evaluate(context.Background(), testResponse(), testContext(), model.DefaultOptions())
	p.Stop()

	records := sink.Records()
	if len(records) != 1 {
		t.Fatalf("Expected 1 audit record, got %d", len(records))
	}
	if records[0].ResponseID != "resp-1" {
		t.Errorf("Unexpected response id %s", records[0].ResponseID)
	}
	if records[0].Recommendation == "" {
		t.Error("Expected the verdict to be mirrored")
	}
}

func TestRiskLevelFor(t *testing.T) {
	tests := []struct {
		score float64
		want  model.RiskLevel
	}{
		{0.9, model.RiskCritical},
		{0.7, model.RiskHigh},
		{0.4, model.RiskMedium},
		{0.1, model.RiskLow},
	}
	for _, tt := range tests {
		if got := riskLevelFor(tt.score); got != tt.want {
			t.Errorf("riskLevelFor(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestRiskScore_InvalidResponseRaisesRisk(t *testing.T) {
	clean := &model.AggregateResult{
		Validation: &model.ValidationReport{IsValid: true, Score: 0.7},
	}
	invalid := &model.AggregateResult{
		Validation: &model.ValidationReport{IsValid: false, Score: 0.2},
	}

	if riskScore(invalid) <= riskScore(clean) {
		t.Error("Expected invalid validation to raise the risk score")
	}
}
