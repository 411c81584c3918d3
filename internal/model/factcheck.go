package model

// VerificationStatus is the outcome of checking one claim against context.
type VerificationStatus string

const (
	StatusVerified     VerificationStatus = "verified"
	StatusDisputed     VerificationStatus = "disputed"
	StatusInconclusive VerificationStatus = "inconclusive"
	StatusUnverified   VerificationStatus = "unverified"
)

// VerificationLevel controls how thoroughly claims are checked.
type VerificationLevel string

const (
	VerifyBasic    VerificationLevel = "basic"    // Knowledge base only
	VerifyStandard VerificationLevel = "standard" // Knowledge base + external sources
	VerifyEnhanced VerificationLevel = "enhanced" // All context including history
)

// Evidence is one context item matched against a claim.
type Evidence struct {
	Source      string  `json:"source"`      // "knowledge_base", "external_source", "history"
	Ref         string  `json:"ref,omitempty"` // Item id, URL, or turn index
	Excerpt     string  `json:"excerpt"`     // The matched text (truncated)
	Similarity  float64 `json:"similarity"`  // Jaccard similarity of token sets, 0-1
	Reliability float64 `json:"reliability"` // Source reliability, 0-1
	Weight      float64 `json:"weight"`      // similarity * reliability
}

// FactCheckResult is the per-claim verification outcome.
type FactCheckResult struct {
	ClaimID               string             `json:"claim_id"`
	Status                VerificationStatus `json:"status"`
	Confidence            float64            `json:"confidence"` // 0-1
	SupportingEvidence    []Evidence         `json:"supporting_evidence,omitempty"`
	ContradictingEvidence []Evidence         `json:"contradicting_evidence,omitempty"`
	Notes                 string             `json:"notes,omitempty"` // Diagnostic text, e.g. degradation reason
}

// FactCheckSummary aggregates per-claim results for one evaluation.
type FactCheckSummary struct {
	TotalClaims        int               `json:"total_claims"`
	VerifiedClaims     int               `json:"verified_claims"`
	DisputedClaims     int               `json:"disputed_claims"`
	UnverifiedClaims   int               `json:"unverified_claims"`
	ContradictoryClaims int              `json:"contradictory_claims"` // Claims with contradicting evidence
	OverallConfidence  float64           `json:"overall_confidence"`   // Mean per-claim confidence
	QualityScore       float64           `json:"quality_score"`        // (verified + 0.5*disputed)/total; 1.0 when vacuous
	Results            []FactCheckResult `json:"results,omitempty"`
}
