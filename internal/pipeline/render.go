package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/credence/internal/model"
)

// Renderer writes evaluation results as JSON, Markdown and a stdout summary.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full result to path.
func (r *Renderer) RenderJSON(result *model.AggregateResult, path string) error {
	raw, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report to path.
func (r *Renderer) RenderMarkdown(result *model.AggregateResult, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Response assessment: %s\n\n", result.Meta.ResponseID)
	fmt.Fprintf(&b, "- **Verdict**: %s\n", result.Recommendation)
	fmt.Fprintf(&b, "- **Overall quality**: %.2f\n", result.OverallQuality)
	fmt.Fprintf(&b, "- **Risk level**: %s\n", result.RiskLevel)
	fmt.Fprintf(&b, "- **Stages**: %s\n\n", strings.Join(result.Meta.ComponentsUsed, ", "))

	if v := result.Validation; v != nil {
		fmt.Fprintf(&b, "## Validation\n\nScore %.2f, valid: %v\n\n", v.Score, v.IsValid)
	}
	if fc := result.FactCheck; fc != nil {
		fmt.Fprintf(&b, "## Fact check\n\n")
		fmt.Fprintf(&b, "%d claims: %d verified, %d disputed, %d unverified. Quality %.2f.\n\n",
			fc.TotalClaims, fc.VerifiedClaims, fc.DisputedClaims, fc.UnverifiedClaims, fc.QualityScore)
	}
	if conf := result.Confidence; conf != nil {
		fmt.Fprintf(&b, "## Confidence\n\nOverall %.2f (%s)\n\n", conf.Overall, conf.Level)
		for dim, score := range conf.ByType {
			fmt.Fprintf(&b, "- %s: %.2f\n", dim, score)
		}
		for _, f := range conf.UncertaintyFactors {
			fmt.Fprintf(&b, "- uncertainty: %s (impact %.1f)\n", f.Type, f.Impact)
		}
		b.WriteString("\n")
	}
	if cd := result.Contradictions; cd != nil && cd.TotalContradictions > 0 {
		fmt.Fprintf(&b, "## Contradictions (%d)\n\n", cd.TotalContradictions)
		for _, c := range cd.Contradictions {
			fmt.Fprintf(&b, "- [%s/%s %.2f] %q vs %q: %s\n",
				c.Type, c.Severity, c.Score, c.Claim1, c.Claim2, c.Resolution.Action)
		}
		b.WriteString("\n")
	}
	if len(result.Recommendations) > 0 {
		b.WriteString("## Recommendations\n\n")
		for _, rec := range result.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n")
		b.WriteString("Generated by credence. Scores reflect lexical support, not truth.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderSummary prints a one-screen summary to stdout.
func (r *Renderer) RenderSummary(result *model.AggregateResult) {
	fmt.Printf("\nResponse %s\n", result.Meta.ResponseID)
	fmt.Printf("  verdict:  %s\n", result.Recommendation)
	fmt.Printf("  quality:  %.2f\n", result.OverallQuality)
	fmt.Printf("  risk:     %s\n", result.RiskLevel)
	if fc := result.FactCheck; fc != nil {
		fmt.Printf("  claims:   %d checked, %d verified, %d disputed\n",
			fc.TotalClaims, fc.VerifiedClaims, fc.DisputedClaims)
	}
	if cd := result.Contradictions; cd != nil {
		fmt.Printf("  contradictions: %d\n", cd.TotalContradictions)
	}
	for _, issue := range result.Issues {
		fmt.Printf("  ! [%s] %s\n", issue.Stage, issue.Message)
	}
}
