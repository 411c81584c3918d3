package model

// Claim represents a factual assertion extracted from a response. Claims are
// derived fresh per evaluation and never persisted independently.
type Claim struct {
	ID         string    `json:"id"`                 // Unique within one evaluation
	Text       string    `json:"text"`               // The claim sentence
	Type       ClaimType `json:"type"`               // Classified nature of the claim
	Confidence float64   `json:"confidence"`         // Extraction confidence, 0-1
	Entities   []Entity  `json:"entities,omitempty"` // Lightweight tagged spans
	Keywords   []string  `json:"keywords,omitempty"` // Lowercased content words
	Sentence   int       `json:"sentence,omitempty"` // Sentence index in source (0-based)
}

// ClaimType categorizes the nature of the claim
type ClaimType string

const (
	ClaimFactual     ClaimType = "factual"
	ClaimNumerical   ClaimType = "numerical"
	ClaimStatistical ClaimType = "statistical"
	ClaimHistorical  ClaimType = "historical"
	ClaimScientific  ClaimType = "scientific"
	ClaimDefinition  ClaimType = "definition"
)

// Entity is a typed span recognized inside a claim.
type Entity struct {
	Text       string     `json:"text"`
	Type       EntityType `json:"type"`
	Confidence float64    `json:"confidence"`
	Start      int        `json:"start"` // Byte offset of the span in the claim text
	End        int        `json:"end"`
}

// EntityType classifies a recognized span
type EntityType string

const (
	EntityPerson       EntityType = "person"
	EntityPlace        EntityType = "place"
	EntityOrganization EntityType = "organization"
	EntityDate         EntityType = "date"
	EntityNumber       EntityType = "number"
	EntityConcept      EntityType = "concept"
	EntityEvent        EntityType = "event"
)
