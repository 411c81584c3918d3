package factcheck

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ppiankov/credence/internal/cache"
	"github.com/ppiankov/credence/internal/model"
)

// Checker verifies extracted claims against the supplied context. Per-claim
// verification fans out concurrently with settle-all semantics: one claim's
// failure degrades to a single unverified result, never aborting the batch.
type Checker struct {
	maxClaims        int
	workers          int
	supportThreshold float64
	contraThreshold  float64
	results          cache.Cache // Keyed by claim-text hash, no expiry
}

// NewChecker creates a checker. The result cache may be nil to disable
// cross-request reuse of verification work.
func NewChecker(cfg model.FactCheckConfig, results cache.Cache) *Checker {
	maxClaims := cfg.MaxClaims
	if maxClaims <= 0 {
		maxClaims = 50
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 10
	}
	supportThreshold := cfg.SupportThreshold
	if supportThreshold <= 0 {
		supportThreshold = 0.6
	}
	contraThreshold := cfg.ContraThreshold
	if contraThreshold <= 0 {
		contraThreshold = 0.8
	}
	return &Checker{
		maxClaims:        maxClaims,
		workers:          workers,
		supportThreshold: supportThreshold,
		contraThreshold:  contraThreshold,
		results:          results,
	}
}

// CheckFacts verifies every claim concurrently and aggregates a summary.
// Zero claims, or more claims than the ceiling, short-circuit to a trivial
// summary with QualityScore 1.0: nothing was checked, nothing failed.
func (c *Checker) CheckFacts(ctx context.Context, claims []model.Claim, ectx model.Context, level model.VerificationLevel) model.FactCheckSummary {
	if len(claims) == 0 || len(claims) > c.maxClaims {
		return model.FactCheckSummary{
			TotalClaims:  len(claims),
			QualityScore: 1.0,
		}
	}
	if level == "" {
		level = model.VerifyStandard
	}

	results := make([]model.FactCheckResult, len(claims))
	sem := make(chan struct{}, c.workers)
	done := make(chan int, len(claims))

	for i, claim := range claims {
		go func(idx int, cl model.Claim) {
			defer func() {
				if r := recover(); r != nil {
					results[idx] = degraded(cl, fmt.Sprintf("verification panic: %v", r))
				}
				done <- idx
			}()

			select {
			case <-ctx.Done():
				results[idx] = degraded(cl, "verification cancelled: "+ctx.Err().Error())
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()

			results[idx] = c.verify(cl, ectx, level)
		}(i, claim)
	}

	// Settle all: wait for every claim regardless of individual outcomes.
	for range claims {
		<-done
	}

	return summarize(claims, results)
}

// verify checks a single claim, consulting the cross-request cache first.
func (c *Checker) verify(claim model.Claim, ectx model.Context, level model.VerificationLevel) model.FactCheckResult {
	key := cache.Key(claim.Text + ":" + string(level))
	if c.results != nil {
		if raw, found := c.results.Get(key); found {
			var cached model.FactCheckResult
			if err := json.Unmarshal(raw, &cached); err == nil {
				// The cache is content-keyed; the claim id is request-scoped.
				cached.ClaimID = claim.ID
				return cached
			}
		}
	}

	scan := c.scanContext(claim, ectx, level)
	result := model.FactCheckResult{
		ClaimID:               claim.ID,
		Status:                statusFor(scan),
		Confidence:            confidenceFor(claim, scan),
		SupportingEvidence:    scan.Supporting,
		ContradictingEvidence: scan.Contradicting,
	}

	if c.results != nil {
		if raw, err := json.Marshal(result); err == nil {
			_ = c.results.Set(key, raw, cache.NoExpiration)
		}
	}
	return result
}

// degraded is the synthetic result for a claim whose verification failed.
func degraded(claim model.Claim, note string) model.FactCheckResult {
	return model.FactCheckResult{
		ClaimID:    claim.ID,
		Status:     model.StatusUnverified,
		Confidence: model.Clamp01(claim.Confidence * 0.5),
		Notes:      note,
	}
}

// summarize aggregates per-claim results into the request-level summary.
// QualityScore = (verified*1.0 + disputed*0.5) / total.
func summarize(claims []model.Claim, results []model.FactCheckResult) model.FactCheckSummary {
	summary := model.FactCheckSummary{
		TotalClaims: len(claims),
		Results:     results,
	}

	var confidenceSum float64
	for _, r := range results {
		confidenceSum += r.Confidence
		switch r.Status {
		case model.StatusVerified:
			summary.VerifiedClaims++
		case model.StatusDisputed:
			summary.DisputedClaims++
		case model.StatusUnverified:
			summary.UnverifiedClaims++
		}
		if len(r.ContradictingEvidence) > 0 {
			summary.ContradictoryClaims++
		}
	}

	summary.OverallConfidence = model.Clamp01(confidenceSum / float64(len(results)))
	summary.QualityScore = model.Clamp01(
		(float64(summary.VerifiedClaims) + 0.5*float64(summary.DisputedClaims)) / float64(len(claims)))
	return summary
}
