package validate

import (
	"fmt"
	"strings"

	"github.com/ppiankov/credence/internal/model"
)

// Validator performs cheap surface checks on a response before the expensive
// stages run: minimum length and banned-term screening. It is intentionally
// shallow; its job is to fail fast.
type Validator struct {
	minLength   int
	bannedTerms []string
}

// NewValidator creates a validator from configuration.
func NewValidator(cfg model.ValidatorConfig) *Validator {
	minLength := cfg.MinLength
	if minLength <= 0 {
		minLength = 10
	}
	return &Validator{
		minLength:   minLength,
		bannedTerms: cfg.BannedTerms,
	}
}

// Validate scores the response surface. The score starts at 0.7, loses 0.2
// per length violation and 0.3 per safety violation, and the response is
// valid while the score stays above 0.5.
func (v *Validator) Validate(response model.Response) model.ValidationReport {
	report := model.ValidationReport{
		Score:    0.7,
		LengthOK: true,
		SafetyOK: true,
	}

	content := strings.TrimSpace(response.Content)
	if len(content) < v.minLength {
		report.Score -= 0.2
		report.LengthOK = false
		report.Issues = append(report.Issues,
			fmt.Sprintf("content below minimum length (%d < %d)", len(content), v.minLength))
	}

	lower := strings.ToLower(content)
	for _, term := range v.bannedTerms {
		if term == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(term)) {
			report.Score -= 0.3
			report.SafetyOK = false
			report.Issues = append(report.Issues,
				fmt.Sprintf("banned term present: %q", term))
		}
	}

	report.Score = model.Clamp01(report.Score)
	report.IsValid = report.Score > 0.5
	return report
}
