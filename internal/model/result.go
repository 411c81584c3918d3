package model

import "time"

// ValidationLevel is the configured depth of analysis.
type ValidationLevel string

const (
	LevelBasic    ValidationLevel = "basic"    // Validation only
	LevelStandard ValidationLevel = "standard" // + fact checking + confidence
	LevelEnhanced ValidationLevel = "enhanced" // + contradiction detection
)

// RiskLevel bands the fused risk of serving a response.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// IssueSeverity indicates the importance of an issue entry.
type IssueSeverity string

const (
	IssueInfo     IssueSeverity = "info"
	IssueWarning  IssueSeverity = "warning"
	IssueCritical IssueSeverity = "critical"
)

// Issue is one problem surfaced by a stage, including stage failures that
// were isolated rather than propagated.
type Issue struct {
	Stage    string        `json:"stage"` // validation, fact_check, confidence, contradiction, system
	Severity IssueSeverity `json:"severity"`
	Message  string        `json:"message"`
}

// ValidationReport is the output of the surface validation stage.
type ValidationReport struct {
	IsValid     bool     `json:"is_valid"` // score > 0.5
	Score       float64  `json:"score"`    // 0-1
	Issues      []string `json:"issues,omitempty"`
	LengthOK    bool     `json:"length_ok"`
	SafetyOK    bool     `json:"safety_ok"`
}

// Options controls one pipeline invocation.
type Options struct {
	ValidationLevel              ValidationLevel `json:"validation_level"`
	IncludeFactChecking          bool            `json:"include_fact_checking"`
	IncludeConfidenceScoring     bool            `json:"include_confidence_scoring"`
	IncludeContradictionDetection bool           `json:"include_contradiction_detection"`
	Threshold                    float64         `json:"threshold"`           // Minimum contradiction score to report
	MaxProcessingTime            time.Duration   `json:"max_processing_time"` // Hard evaluation deadline; 0 disables
}

// DefaultOptions returns the options for a plain standard-level evaluation.
func DefaultOptions() Options {
	return Options{
		ValidationLevel:               LevelStandard,
		IncludeFactChecking:           true,
		IncludeConfidenceScoring:      true,
		IncludeContradictionDetection: true,
		Threshold:                     0.5,
	}
}

// ResultMeta describes the evaluation run itself.
type ResultMeta struct {
	RequestID       string          `json:"request_id"`
	ResponseID      string          `json:"response_id"`
	Timestamp       time.Time       `json:"timestamp"`
	ValidationLevel ValidationLevel `json:"validation_level"`
	ComponentsUsed  []string        `json:"components_used"`
	Elapsed         time.Duration   `json:"elapsed_ms"`
	FromCache       bool            `json:"from_cache,omitempty"`
}

// AggregateResult fuses every stage's output into one verdict.
type AggregateResult struct {
	Meta           ResultMeta           `json:"meta"`
	Validation     *ValidationReport    `json:"validation,omitempty"`
	FactCheck      *FactCheckSummary    `json:"fact_check,omitempty"`
	Confidence     *ConfidenceScore     `json:"confidence,omitempty"`
	Contradictions *ContradictionReport `json:"contradictions,omitempty"`

	OverallQuality  float64        `json:"overall_quality"` // Mean of computed stage scores, 0-1
	RiskLevel       RiskLevel      `json:"risk_level"`
	Recommendation  Recommendation `json:"recommendation"`
	Issues          []Issue        `json:"issues,omitempty"`
	Recommendations []string       `json:"recommendations,omitempty"`
}

// AuditRecord is the append-only record mirrored to the audit sink.
type AuditRecord struct {
	ResponseID     string         `json:"response_id"`
	RequestID      string         `json:"request_id"`
	OverallQuality float64        `json:"overall_quality"`
	RiskLevel      RiskLevel      `json:"risk_level"`
	Recommendation Recommendation `json:"recommendation"`
	Issues         []Issue        `json:"issues,omitempty"`
	Timestamp      time.Time      `json:"timestamp"`
}
