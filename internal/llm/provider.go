// Package llm provides an optional natural-language explanation of an
// evaluation result. Providers only describe what the pipeline already
// measured; their output never feeds back into any score.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/ppiankov/credence/internal/model"
)

// Provider defines the interface for explanation backends.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Explain generates a prose explanation of an evaluation result.
	Explain(ctx context.Context, req ExplainRequest) (*ExplainResponse, error)

	// IsAvailable checks if the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// ExplainRequest contains the input for result explanation.
type ExplainRequest struct {
	// Result is the aggregate evaluation to explain.
	Result *model.AggregateResult

	// Prompt overrides the default prompt when non-empty.
	Prompt string

	// Model is the specific model to use (provider-specific).
	Model string

	// MaxTokens limits the response length.
	MaxTokens int
}

// ExplainResponse contains the generated explanation.
type ExplainResponse struct {
	Explanation string
	Model       string
	TokensUsed  int
}

// Config holds provider configuration.
type Config struct {
	// Provider name: "openai", "ollama", "" disables.
	Provider string

	// Model name (provider-specific).
	Model string

	// APIKey for hosted providers.
	APIKey string

	// BaseURL for custom endpoints (e.g. Ollama).
	BaseURL string

	// Timeout for API requests.
	Timeout time.Duration

	// MaxTokens for response generation.
	MaxTokens int

	// Proxy settings.
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// ConfigFromModel converts model.LLMConfig to llm.Config.
func ConfigFromModel(cfg model.LLMConfig, httpCfg model.HTTPConfig) Config {
	return Config{
		Provider:   cfg.Provider,
		Model:      cfg.Model,
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		MaxTokens:  cfg.MaxTokens,
		HTTPProxy:  httpCfg.HTTPProxy,
		HTTPSProxy: httpCfg.HTTPSProxy,
		NoProxy:    httpCfg.NoProxy,
	}
}

// BuildPrompt constructs the default explanation prompt. The model is told
// to restate the pipeline's findings, never to re-judge the content.
func BuildPrompt(result *model.AggregateResult) string {
	prompt := fmt.Sprintf(`You are explaining an automated response-quality assessment. The assessment measures how well a response's claims are supported by the provided context - it NEVER asserts truth or correctness, and neither should you.

RULES:
1. Describe only what the assessment found. Do not add your own judgment of the content.
2. Focus on SUPPORT QUALITY, not truth. Use phrases like "the claim is supported by", "evidence is lacking for", "the context contradicts".
3. Never say "this is true" or "this is false".

Assessment:
- Verdict: %s
- Overall quality: %.2f
- Risk level: %s
`, result.Recommendation, result.OverallQuality, result.RiskLevel)

	if s := result.FactCheck; s != nil {
		prompt += fmt.Sprintf("- Claims checked: %d (%d verified, %d contradicted, %d disputed, %d unverified)\n",
			s.TotalClaims, s.VerifiedClaims, s.ContradictoryClaims, s.DisputedClaims, s.UnverifiedClaims)
	}
	if c := result.Confidence; c != nil {
		prompt += fmt.Sprintf("- Confidence: %.2f (%s)\n", c.Overall, c.Level)
		for i, f := range c.UncertaintyFactors {
			if i >= 3 {
				break
			}
			prompt += fmt.Sprintf("- Uncertainty: %s\n", f.Description)
		}
	}
	if r := result.Contradictions; r != nil && r.TotalContradictions > 0 {
		prompt += fmt.Sprintf("- Contradictions found: %d (highest score %.2f)\n",
			r.TotalContradictions, r.HighestScore)
	}

	prompt += "\nProvide a 3-4 sentence explanation of the verdict for a non-technical reader."
	return prompt
}
