package model

// ContradictionType classifies how two statements conflict.
type ContradictionType string

const (
	ContradictionSelf       ContradictionType = "self"       // Within the same response
	ContradictionCross      ContradictionType = "cross"      // Against supplied context
	ContradictionTemporal   ContradictionType = "temporal"   // Conflicting time references
	ContradictionLogical    ContradictionType = "logical"    // Antonym pattern match
	ContradictionContextual ContradictionType = "contextual" // Against the user profile
	ContradictionFactual    ContradictionType = "factual"    // Against verified facts
)

// Severity bands a contradiction by its score.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// SeverityForScore maps a contradiction score to its band.
// >=0.8 critical, >=0.6 high, >=0.4 medium, else low.
func SeverityForScore(score float64) Severity {
	switch {
	case score >= 0.8:
		return SeverityCritical
	case score >= 0.6:
		return SeverityHigh
	case score >= 0.4:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Contradiction is a detected conflict between two statements.
// The score is symmetric: scoring (A,B) and (B,A) yields the same value.
type Contradiction struct {
	ID         string            `json:"id"`
	Type       ContradictionType `json:"type"`
	Severity   Severity          `json:"severity"`
	Claim1     string            `json:"claim1"` // Text of the first statement
	Claim2     string            `json:"claim2"` // Text of the second statement or context excerpt
	Score      float64           `json:"contradiction_score"` // 0-1
	Resolution Resolution        `json:"resolution"`
}

// Resolution is a deterministic suggestion derived from the contradiction's
// type and score.
type Resolution struct {
	Action        string  `json:"action"` // e.g. "remove_conflicting_claim", "verify_against_source"
	Priority      float64 `json:"priority"`
	RequiresHuman bool    `json:"requires_human"`
}

// ContradictionReport is the output of the contradiction stage.
type ContradictionReport struct {
	TotalContradictions int             `json:"total_contradictions"`
	Contradictions      []Contradiction `json:"contradictions,omitempty"` // Sorted by score desc, capped
	HighestScore        float64         `json:"highest_score"`
	ClaimsAnalyzed      int             `json:"claims_analyzed"`
}
