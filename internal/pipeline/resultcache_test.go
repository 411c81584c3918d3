package pipeline

import (
	"testing"
	"time"

	"github.com/ppiankov/credence/internal/model"
)

func cachedResult(id string, level model.ValidationLevel) *model.AggregateResult {
	return &model.AggregateResult{
		Meta: model.ResultMeta{
			RequestID:       "req-" + id,
			ResponseID:      id,
			ValidationLevel: level,
		},
		OverallQuality: 0.75,
		Recommendation: model.RecommendReview,
	}
}

func TestResultCache_Roundtrip(t *testing.T) {
	c := NewResultCache(time.Minute, time.Minute)

	c.Put(cachedResult("r1", model.LevelStandard))

	got, found := c.Get("r1", model.LevelStandard)
	if !found {
		t.Fatal("Expected a cache hit")
	}
	if got.OverallQuality != 0.75 || got.Recommendation != model.RecommendReview {
		t.Errorf("Unexpected cached result: %+v", got)
	}

	if _, found := c.Get("r1", model.LevelEnhanced); found {
		t.Error("Expected a different level to miss")
	}
	if _, found := c.Get("r2", model.LevelStandard); found {
		t.Error("Expected a different response id to miss")
	}
}

func TestResultCache_TTLAndSweep(t *testing.T) {
	c := NewResultCache(15*time.Millisecond, time.Minute)

	c.Put(cachedResult("r1", model.LevelStandard))
	if c.Len() != 1 {
		t.Fatalf("Expected 1 entry, got %d", c.Len())
	}

	time.Sleep(30 * time.Millisecond)

	// Expired entries miss on Get even before a sweep.
	if _, found := c.Get("r1", model.LevelStandard); found {
		t.Error("Expected expired entry to miss")
	}
	// The sweep reclaims the slot.
	c.Sweep()
	if c.Len() != 0 {
		t.Errorf("Expected empty cache after sweep, got %d entries", c.Len())
	}
}

func TestResultCache_BackgroundSweep(t *testing.T) {
	c := NewResultCache(10*time.Millisecond, 20*time.Millisecond)
	c.Start()
	defer c.Stop()

	c.Put(cachedResult("r1", model.LevelStandard))

	deadline := time.After(time.Second)
	for c.Len() != 0 {
		select {
		case <-deadline:
			t.Fatal("Expected the background sweep to reclaim the entry")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestResultCache_StartStopIdempotent(t *testing.T) {
	c := NewResultCache(time.Minute, time.Minute)
	c.Start()
	c.Start()
	c.Stop()
	c.Stop()
}
