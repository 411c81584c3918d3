package model

// Recommendation is the pipeline's verdict for a response.
type Recommendation string

const (
	RecommendAccept       Recommendation = "accept"
	RecommendReview       Recommendation = "review"
	RecommendVerify       Recommendation = "verify"
	RecommendRequestHuman Recommendation = "request_human"
	RecommendReject       Recommendation = "reject"
)

// ConfidenceLevel is the coarse tier derived from the overall score.
type ConfidenceLevel string

const (
	ConfidenceLow      ConfidenceLevel = "low"
	ConfidenceMedium   ConfidenceLevel = "medium"
	ConfidenceHigh     ConfidenceLevel = "high"
	ConfidenceVeryHigh ConfidenceLevel = "very_high"
)

// ConfidenceDimension names one of the five scored axes.
type ConfidenceDimension string

const (
	DimFactual       ConfidenceDimension = "factual"
	DimContextual    ConfidenceDimension = "contextual"
	DimMethodological ConfidenceDimension = "methodological"
	DimTemporal      ConfidenceDimension = "temporal"
	DimSourceReliability ConfidenceDimension = "source_reliability"
)

// UncertaintyFactor is a detected reason to distrust a response.
type UncertaintyFactor struct {
	Type        string  `json:"type"`   // knowledge_gap, outdated_information, ambiguous_claim, incomplete_context
	Impact      float64 `json:"impact"` // 0-1; >0.7 counts as critical
	Description string  `json:"description"`
}

// Critical reports whether this factor alone is severe enough to block
// an accept recommendation.
func (f UncertaintyFactor) Critical() bool {
	return f.Impact > 0.7
}

// ConfidenceScore is the multi-dimensional confidence assessment.
// Recommendation and Level are pure functions of Overall and the detected
// uncertainty factors, never set independently.
type ConfidenceScore struct {
	Overall            float64                         `json:"overall"` // 0-1
	ByType             map[ConfidenceDimension]float64 `json:"by_type"`
	ByClaim            map[string]float64              `json:"by_claim,omitempty"`
	UncertaintyFactors []UncertaintyFactor             `json:"uncertainty_factors,omitempty"`
	Recommendation     Recommendation                  `json:"recommendation"`
	Level              ConfidenceLevel                 `json:"confidence_level"`
}

// CoherenceReport scores the logical/structural texture of a response.
// It is advisory and never feeds the overall confidence.
type CoherenceReport struct {
	Logical     float64 `json:"logical"`     // Connector-word density
	Structural  float64 `json:"structural"`  // Paragraph organization
	Consistency float64 `json:"consistency"` // Negation balance
	Flow        float64 `json:"flow"`        // Sentence-length variance
	Overall     float64 `json:"overall"`     // Mean of the four
}

// FollowUpQuestion is a suggested next question for the learner or a
// human reviewer, ranked by Priority * EstimatedValue.
type FollowUpQuestion struct {
	Question       string  `json:"question"`
	Category       string  `json:"category"` // verification, expansion, fact_check, context
	Priority       float64 `json:"priority"`
	EstimatedValue float64 `json:"estimated_value"`
}
