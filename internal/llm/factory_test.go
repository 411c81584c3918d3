package llm

import (
	"strings"
	"testing"

	"github.com/ppiankov/credence/internal/model"
)

func TestNewProvider_EmptyDisables(t *testing.T) {
	provider, err := NewProvider(Config{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if provider != nil {
		t.Error("Expected nil provider when no provider is configured")
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	_, err := NewProvider(Config{Provider: "bard"})
	if err == nil {
		t.Fatal("Expected error for unknown provider")
	}
	if !strings.Contains(err.Error(), "bard") {
		t.Errorf("Expected error to name the provider, got %v", err)
	}
}

func TestNewProvider_OpenAIRequiresKey(t *testing.T) {
	_, err := NewProvider(Config{Provider: "openai"})
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}
}

func TestNewProvider_Ollama(t *testing.T) {
	provider, err := NewProvider(Config{Provider: "ollama"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if provider.Name() != "ollama" {
		t.Errorf("Expected provider name ollama, got %s", provider.Name())
	}
}

func TestNewProvider_CaseInsensitive(t *testing.T) {
	provider, err := NewProvider(Config{Provider: "Ollama"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if provider == nil {
		t.Fatal("Expected provider for mixed-case name")
	}
}

func TestBuildPrompt_IncludesFindings(t *testing.T) {
	result := &model.AggregateResult{
		OverallQuality: 0.42,
		RiskLevel:      model.RiskHigh,
		Recommendation: model.RecommendVerify,
		FactCheck: &model.FactCheckSummary{
			TotalClaims:         4,
			VerifiedClaims:      1,
			ContradictoryClaims: 1,
			UnverifiedClaims:    2,
		},
		Confidence: &model.ConfidenceScore{
			Overall: 0.45,
			Level:   model.ConfidenceLow,
			UncertaintyFactors: []model.UncertaintyFactor{
				{Type: "knowledge_gap", Description: "2 of 4 claims lack any supporting evidence"},
			},
		},
		Contradictions: &model.ContradictionReport{
			TotalContradictions: 1,
			HighestScore:        0.7,
		},
	}

	prompt := BuildPrompt(result)

	for _, want := range []string{
		"Verdict: verify",
		"Risk level: high",
		"Claims checked: 4",
		"2 of 4 claims lack any supporting evidence",
		"Contradictions found: 1",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
	if !strings.Contains(prompt, "NEVER asserts truth") {
		t.Error("Expected prompt to forbid truth judgments")
	}
}

func TestBuildPrompt_CapsUncertaintyFactors(t *testing.T) {
	result := testResult()
	result.Confidence = &model.ConfidenceScore{
		Overall: 0.5,
		Level:   model.ConfidenceMedium,
		UncertaintyFactors: []model.UncertaintyFactor{
			{Description: "factor one"},
			{Description: "factor two"},
			{Description: "factor three"},
			{Description: "factor four"},
		},
	}

	prompt := BuildPrompt(result)
	if strings.Contains(prompt, "factor four") {
		t.Error("Expected prompt to cap uncertainty factors at 3")
	}
	if !strings.Contains(prompt, "factor three") {
		t.Error("Expected prompt to keep the first 3 uncertainty factors")
	}
}
