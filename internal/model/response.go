package model

import "time"

// Response is an AI-generated answer handed to the pipeline for screening.
// It is produced upstream and treated as immutable input.
type Response struct {
	ID       string            `json:"id"`                 // Upstream response identifier
	Content  string            `json:"content"`            // The answer text
	Metadata map[string]string `json:"metadata,omitempty"` // Opaque upstream metadata
}

// Context is the read-only bundle of material the caller supplies for
// verification. The pipeline never mutates it.
type Context struct {
	KnowledgeBase       []KnowledgeItem  `json:"knowledge_base,omitempty"`
	ConversationHistory []HistoryEntry   `json:"conversation_history,omitempty"`
	ExternalSources     []ExternalSource `json:"external_sources,omitempty"`
	UserProfile         *UserProfile     `json:"user_profile,omitempty"`
}

// KnowledgeItem is one entry of the caller's knowledge base.
type KnowledgeItem struct {
	ID          string  `json:"id,omitempty"`
	Topic       string  `json:"topic,omitempty"`
	Content     string  `json:"content"`
	Reliability float64 `json:"reliability,omitempty"` // 0-1; 0 means "not set", treated as 1.0
}

// HistoryEntry is one prior turn of the conversation.
type HistoryEntry struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// ExternalSource is an outside reference with a caller-assigned reliability.
type ExternalSource struct {
	URL         string  `json:"url,omitempty"`
	Title       string  `json:"title,omitempty"`
	Content     string  `json:"content,omitempty"`     // Resolved text, if fetched
	Reliability float64 `json:"reliability"`           // 0-1
}

// UserProfile describes the learner the answer is meant for.
type UserProfile struct {
	AcademicLevel string   `json:"academic_level,omitempty"` // e.g. "gcse", "a-level", "undergraduate"
	Subjects      []string `json:"subjects,omitempty"`       // Declared subjects of study
	Statements    []string `json:"statements,omitempty"`     // Free-form facts the user has asserted
}

// Clamp01 clamps a score into [0,1]. Every probability field in the model
// passes through this before being stored.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
