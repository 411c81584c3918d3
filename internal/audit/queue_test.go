package audit

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ppiankov/credence/internal/model"
)

// flakySink fails the first n appends, then delegates to memory.
type flakySink struct {
	mu       sync.Mutex
	failures int
	mem      *MemorySink
}

func (s *flakySink) Append(ctx context.Context, record model.AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failures > 0 {
		s.failures--
		return errors.New("sink unavailable")
	}
	return s.mem.Append(ctx, record)
}

func record(id string) model.AuditRecord {
	return model.AuditRecord{
		ResponseID:     id,
		RequestID:      "req-" + id,
		OverallQuality: 0.8,
		RiskLevel:      model.RiskLow,
		Recommendation: model.RecommendAccept,
		Timestamp:      time.Now().UTC(),
	}
}

func TestQueue_DeliversRecords(t *testing.T) {
	sink := NewMemorySink()
	q := NewQueue(sink, 8, 2)
	q.Start()

	q.Enqueue(record("r1"))
	q.Enqueue(record("r2"))
	q.Stop()

	records := sink.Records()
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].ResponseID != "r1" || records[1].ResponseID != "r2" {
		t.Errorf("Unexpected order: %+v", records)
	}
}

func TestQueue_RetriesFailedAppend(t *testing.T) {
	sink := &flakySink{failures: 2, mem: NewMemorySink()}
	q := NewQueue(sink, 8, 3)
	q.retryDelay = time.Millisecond
	q.Start()

	q.Enqueue(record("r1"))
	q.Stop()

	if got := len(sink.mem.Records()); got != 1 {
		t.Errorf("Expected record delivered after retries, got %d", got)
	}
}

func TestQueue_GivesUpAfterMaxRetries(t *testing.T) {
	sink := &flakySink{failures: 100, mem: NewMemorySink()}
	q := NewQueue(sink, 8, 2)
	q.retryDelay = time.Millisecond
	q.Start()

	q.Enqueue(record("r1"))
	q.Stop() // Must return despite the sink never recovering.

	if got := len(sink.mem.Records()); got != 0 {
		t.Errorf("Expected no delivered records, got %d", got)
	}
}

func TestQueue_DropsWhenFull(t *testing.T) {
	sink := NewMemorySink()
	q := NewQueue(sink, 2, 1)
	// Not started: the channel fills and later records drop without blocking.
	for i := 0; i < 5; i++ {
		q.Enqueue(record(fmt.Sprintf("r%d", i)))
	}

	q.Start()
	q.Stop()

	if got := len(sink.Records()); got != 2 {
		t.Errorf("Expected the 2 buffered records, got %d", got)
	}
}

func TestFileSink_AppendsJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	sink := NewFileSink(path)

	if err := sink.Append(context.Background(), record("r1")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := sink.Append(context.Background(), record("r2")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], `"response_id":"r1"`) {
		t.Errorf("Unexpected first line: %s", lines[0])
	}
}
