package audit

import (
	"context"
	"sync"

	"github.com/ppiankov/credence/internal/model"
)

// MemorySink keeps records in memory. Used in tests and as the default when
// no audit file is configured.
type MemorySink struct {
	mu      sync.Mutex
	records []model.AuditRecord
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Append stores the record.
func (s *MemorySink) Append(_ context.Context, record model.AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

// Records returns a copy of everything appended so far.
func (s *MemorySink) Records() []model.AuditRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.AuditRecord, len(s.records))
	copy(out, s.records)
	return out
}
