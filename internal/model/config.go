package model

import "time"

// Config is the full credence configuration tree. Defaults come from
// DefaultConfig; the CLI overlays config file, env vars and flags on top.
type Config struct {
	Pipeline      PipelineConfig      `yaml:"pipeline" mapstructure:"pipeline"`
	Validator     ValidatorConfig     `yaml:"validator" mapstructure:"validator"`
	FactCheck     FactCheckConfig     `yaml:"fact_check" mapstructure:"fact_check"`
	Confidence    ConfidenceConfig    `yaml:"confidence" mapstructure:"confidence"`
	Contradiction ContradictionConfig `yaml:"contradiction" mapstructure:"contradiction"`
	Audit         AuditConfig         `yaml:"audit" mapstructure:"audit"`
	Cache         CacheConfig         `yaml:"cache" mapstructure:"cache"`
	HTTP          HTTPConfig          `yaml:"http" mapstructure:"http"`
	Concurrency   ConcurrencyConfig   `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting  RateLimitConfig     `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	LLM           LLMConfig           `yaml:"llm" mapstructure:"llm"`
	Output        OutputConfig        `yaml:"output" mapstructure:"output"`
}

// PipelineConfig controls the orchestrator.
type PipelineConfig struct {
	Level             ValidationLevel `yaml:"level" mapstructure:"level"`
	StrictMode        bool            `yaml:"strict_mode" mapstructure:"strict_mode"` // Invalid validation terminates the run
	Threshold         float64         `yaml:"threshold" mapstructure:"threshold"`     // Contradiction report floor
	ResultTTL         time.Duration   `yaml:"result_ttl" mapstructure:"result_ttl"`
	CleanupInterval   time.Duration   `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
	MaxProcessingTime time.Duration   `yaml:"max_processing_time" mapstructure:"max_processing_time"` // 0 disables the deadline
}

// ValidatorConfig controls the surface content checks.
type ValidatorConfig struct {
	MinLength   int      `yaml:"min_length" mapstructure:"min_length"`
	BannedTerms []string `yaml:"banned_terms" mapstructure:"banned_terms"`
}

// FactCheckConfig controls claim verification.
type FactCheckConfig struct {
	MaxClaims        int     `yaml:"max_claims" mapstructure:"max_claims"` // Ceiling before short-circuit
	Workers          int     `yaml:"workers" mapstructure:"workers"`       // Concurrent per-claim verifications
	SupportThreshold float64 `yaml:"support_threshold" mapstructure:"support_threshold"`
	ContraThreshold  float64 `yaml:"contra_threshold" mapstructure:"contra_threshold"`
}

// ConfidenceConfig controls the confidence scorer.
type ConfidenceConfig struct {
	VaguenessThreshold float64 `yaml:"vagueness_threshold" mapstructure:"vagueness_threshold"` // Vague-token density triggering ambiguous_claim
	RecentYearWindow   int     `yaml:"recent_year_window" mapstructure:"recent_year_window"`   // Years back considered "recent"
	OutdatedBefore     int     `yaml:"outdated_before" mapstructure:"outdated_before"`         // Year tokens older than this flag outdated_information
}

// ContradictionConfig controls the contradiction detectors.
type ContradictionConfig struct {
	MaxReported int `yaml:"max_reported" mapstructure:"max_reported"`
}

// AuditConfig controls the append-only audit mirror.
type AuditConfig struct {
	Enabled    bool   `yaml:"enabled" mapstructure:"enabled"`
	File       string `yaml:"file" mapstructure:"file"` // JSONL path; empty keeps records in memory
	QueueSize  int    `yaml:"queue_size" mapstructure:"queue_size"`
	MaxRetries int    `yaml:"max_retries" mapstructure:"max_retries"`
}

// CacheConfig controls the shared per-claim verification cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Dir     string `yaml:"dir" mapstructure:"dir"` // Disk layer location; empty keeps memory only
}

// HTTPConfig controls the external-source fetcher.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	HTTPProxy    string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// ConcurrencyConfig controls batch processing fan-out.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitConfig controls per-host politeness for source fetching.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// LLMConfig controls the optional explainer. It never affects scoring.
type LLMConfig struct {
	Provider  string        `yaml:"provider" mapstructure:"provider"` // "openai", "ollama", "" disables
	Model     string        `yaml:"model" mapstructure:"model"`
	APIKey    string        `yaml:"-" mapstructure:"-"` // Env only, never written to disk
	BaseURL   string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxTokens int           `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns the canonical defaults.
func DefaultConfig() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			Level:           LevelStandard,
			StrictMode:      false,
			Threshold:       0.5,
			ResultTTL:       10 * time.Minute,
			CleanupInterval: time.Minute,
		},
		Validator: ValidatorConfig{
			MinLength: 10,
			BannedTerms: []string{
				"cheat sheet answers", "exam leak", "plagiarize",
			},
		},
		FactCheck: FactCheckConfig{
			MaxClaims:        50,
			Workers:          10,
			SupportThreshold: 0.6,
			ContraThreshold:  0.8,
		},
		Confidence: ConfidenceConfig{
			VaguenessThreshold: 0.04,
			RecentYearWindow:   2,
			OutdatedBefore:     2015,
		},
		Contradiction: ContradictionConfig{
			MaxReported: 20,
		},
		Audit: AuditConfig{
			Enabled:    false,
			QueueSize:  64,
			MaxRetries: 3,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		HTTP: HTTPConfig{
			Timeout:      10 * time.Second,
			UserAgent:    "Credence/0.1 (+https://github.com/ppiankov/credence)",
			MaxBodyBytes: 2_000_000,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 2,
			BurstSize:         5,
		},
		LLM: LLMConfig{
			Timeout:   30 * time.Second,
			MaxTokens: 1000,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
