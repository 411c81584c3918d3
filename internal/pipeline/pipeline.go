package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ppiankov/credence/internal/audit"
	"github.com/ppiankov/credence/internal/cache"
	"github.com/ppiankov/credence/internal/confidence"
	"github.com/ppiankov/credence/internal/contradict"
	"github.com/ppiankov/credence/internal/extract"
	"github.com/ppiankov/credence/internal/factcheck"
	"github.com/ppiankov/credence/internal/model"
	"github.com/ppiankov/credence/internal/validate"
)

// Stage names used in issues and component lists.
const (
	stageValidation    = "validation"
	stageFactCheck     = "fact_check"
	stageConfidence    = "confidence"
	stageContradiction = "contradiction"
	stageSystem        = "system"
)

// Pipeline orchestrates the four assessment stages and fuses their outputs
// into one AggregateResult. The public entry point never panics: a
// catastrophic failure yields a synthetic rejecting result.
type Pipeline struct {
	cfg       *model.Config
	extractor extract.ClaimExtractor
	validator *validate.Validator
	checker   *factcheck.Checker
	scorer    *confidence.Scorer
	detector  *contradict.Detector
	results   *ResultCache
	auditq    *audit.Queue
}

// NewPipeline wires the stages from configuration.
func NewPipeline(cfg *model.Config) *Pipeline {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}

	var claimCache cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			claimCache = cache.NewLayeredCache(cache.NoExpiration, cfg.Cache.Dir, cache.NoExpiration)
		} else {
			claimCache = cache.NewMemoryCache(cache.NoExpiration)
		}
	}

	var auditq *audit.Queue
	if cfg.Audit.Enabled {
		var sink audit.Sink
		if cfg.Audit.File != "" {
			sink = audit.NewFileSink(cfg.Audit.File)
		} else {
			sink = audit.NewMemorySink()
		}
		auditq = audit.NewQueue(sink, cfg.Audit.QueueSize, cfg.Audit.MaxRetries)
	}

	return &Pipeline{
		cfg:       cfg,
		extractor: extract.NewLexicalExtractor(),
		validator: validate.NewValidator(cfg.Validator),
		checker:   factcheck.NewChecker(cfg.FactCheck, claimCache),
		scorer:    confidence.NewScorer(cfg.Confidence),
		detector:  contradict.NewDetector(cfg.Contradiction),
		results:   NewResultCache(cfg.Pipeline.ResultTTL, cfg.Pipeline.CleanupInterval),
		auditq:    auditq,
	}
}

// WithExtractor swaps the claim extraction strategy.
func (p *Pipeline) WithExtractor(e extract.ClaimExtractor) *Pipeline {
	p.extractor = e
	return p
}

// WithAuditQueue attaches a pre-built audit queue (tests inject one around a
// MemorySink).
func (p *Pipeline) WithAuditQueue(q *audit.Queue) *Pipeline {
	p.auditq = q
	return p
}

// ResultCache exposes the cache service for lifecycle control.
func (p *Pipeline) ResultCache() *ResultCache {
	return p.results
}

// Start launches the background services: the result-cache sweep and, when
// configured, the audit delivery worker.
func (p *Pipeline) Start() {
	p.results.Start()
	if p.auditq != nil {
		p.auditq.Start()
	}
}

// Stop halts background services.
func (p *Pipeline) Stop() {
	p.results.Stop()
	if p.auditq != nil {
		p.auditq.Stop()
	}
}

// Evaluate runs the configured stages over one response. It never panics
// and never returns an error: failures degrade into issues on the result.
func (p *Pipeline) Evaluate(ctx context.Context, response model.Response, ectx model.Context, opts model.Options) (result *model.AggregateResult) {
	started := time.Now()

	defer func() {
		if r := recover(); r != nil {
			result = p.catastrophic(response, opts, fmt.Sprintf("panic: %v", r))
		}
	}()

	opts = p.normalize(opts)

	if cached, found := p.results.Get(response.ID, opts.ValidationLevel); found {
		cached.Meta.FromCache = true
		return cached
	}

	if opts.MaxProcessingTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.MaxProcessingTime)
		defer cancel()
	}

	result = &model.AggregateResult{
		Meta: model.ResultMeta{
			RequestID:       uuid.NewString(),
			ResponseID:      response.ID,
			Timestamp:       started.UTC(),
			ValidationLevel: opts.ValidationLevel,
		},
	}

	var stageScores []float64
	used := func(stage string) {
		result.Meta.ComponentsUsed = append(result.Meta.ComponentsUsed, stage)
	}

	// Stage 1: validation. Always runs; in strict mode an invalid response
	// terminates the pipeline with a rejecting result.
	validation := p.validator.Validate(response)
	result.Validation = &validation
	stageScores = append(stageScores, validation.Score)
	used(stageValidation)
	for _, issue := range validation.Issues {
		result.Issues = append(result.Issues, model.Issue{
			Stage: stageValidation, Severity: model.IssueWarning, Message: issue,
		})
	}
	if !validation.IsValid && p.cfg.Pipeline.StrictMode {
		result.Issues = append(result.Issues, model.Issue{
			Stage:    stageValidation,
			Severity: model.IssueCritical,
			Message:  "response rejected by strict validation",
		})
		result.Recommendation = model.RecommendReject
		p.finish(result, response, stageScores, started)
		return result
	}

	runFactCheck := opts.ValidationLevel != model.LevelBasic && opts.IncludeFactChecking
	runConfidence := opts.ValidationLevel != model.LevelBasic && opts.IncludeConfidenceScoring
	runContradiction := opts.ValidationLevel == model.LevelEnhanced && opts.IncludeContradictionDetection

	var claims []model.Claim
	if runFactCheck || runContradiction {
		claims = p.extractor.Extract(response.Content)
	}

	// Stage 2: fact checking.
	if runFactCheck && !p.expired(ctx, result) {
		summary, err := p.runFactCheck(ctx, claims, ectx, opts.ValidationLevel)
		if err != nil {
			result.Issues = append(result.Issues, stageFailure(stageFactCheck, err))
		} else {
			result.FactCheck = summary
			stageScores = append(stageScores, summary.QualityScore)
			used(stageFactCheck)
		}
	}

	// Stage 3: confidence scoring, consuming the fact-check summary.
	if runConfidence && !p.expired(ctx, result) {
		score, err := p.runConfidence(response, ectx, result.FactCheck)
		if err != nil {
			result.Issues = append(result.Issues, stageFailure(stageConfidence, err))
		} else {
			result.Confidence = score
			stageScores = append(stageScores, score.Overall)
			used(stageConfidence)
		}
	}

	// Stage 4: contradiction detection.
	if runContradiction && !p.expired(ctx, result) {
		report, err := p.runContradiction(claims, ectx, opts.Threshold)
		if err != nil {
			result.Issues = append(result.Issues, stageFailure(stageContradiction, err))
		} else {
			result.Contradictions = report
			stageScores = append(stageScores, model.Clamp01(1-report.HighestScore))
			used(stageContradiction)
		}
	}

	if result.Confidence != nil {
		result.Recommendation = result.Confidence.Recommendation
	}
	p.finish(result, response, stageScores, started)
	return result
}

// runFactCheck isolates the fact-check stage; a panic becomes an error.
func (p *Pipeline) runFactCheck(ctx context.Context, claims []model.Claim, ectx model.Context, level model.ValidationLevel) (summary *model.FactCheckSummary, err error) {
	defer func() {
		if r := recover(); r != nil {
			summary, err = nil, model.NewStageError(stageFactCheck, model.ErrFactCheck, fmt.Errorf("%v", r))
		}
	}()
	s := p.checker.CheckFacts(ctx, claims, ectx, verificationLevel(level))
	return &s, nil
}

// runConfidence isolates the confidence stage.
func (p *Pipeline) runConfidence(response model.Response, ectx model.Context, summary *model.FactCheckSummary) (score *model.ConfidenceScore, err error) {
	defer func() {
		if r := recover(); r != nil {
			score, err = nil, model.NewStageError(stageConfidence, model.ErrConfidence, fmt.Errorf("%v", r))
		}
	}()
	s := p.scorer.Calculate(response, ectx, summary)
	return &s, nil
}

// runContradiction isolates the contradiction stage.
func (p *Pipeline) runContradiction(claims []model.Claim, ectx model.Context, threshold float64) (report *model.ContradictionReport, err error) {
	defer func() {
		if r := recover(); r != nil {
			report, err = nil, model.NewStageError(stageContradiction, model.ErrContradiction, fmt.Errorf("%v", r))
		}
	}()
	r := p.detector.Detect(claims, ectx, threshold)
	return &r, nil
}

// expired records a deadline issue once the evaluation context is done.
// Later stages are skipped; whatever completed still flows into fusion.
func (p *Pipeline) expired(ctx context.Context, result *model.AggregateResult) bool {
	if ctx.Err() == nil {
		return false
	}
	for _, issue := range result.Issues {
		if issue.Stage == stageSystem {
			return true
		}
	}
	result.Issues = append(result.Issues, model.Issue{
		Stage:    stageSystem,
		Severity: model.IssueCritical,
		Message:  "processing deadline exceeded, remaining stages skipped",
	})
	return true
}

// finish fuses stage scores into the overall verdict, caches the result and
// mirrors it to the audit queue.
func (p *Pipeline) finish(result *model.AggregateResult, response model.Response, stageScores []float64, started time.Time) {
	if len(stageScores) > 0 {
		var sum float64
		for _, s := range stageScores {
			sum += s
		}
		result.OverallQuality = model.Clamp01(sum / float64(len(stageScores)))
	}

	if result.Recommendation == "" {
		// No confidence stage ran: derive the verdict from overall quality.
		result.Recommendation = confidence.RecommendationFor(result.OverallQuality, 0)
	}

	result.RiskLevel = riskLevelFor(riskScore(result))
	result.Recommendations = recommendationsFor(result)
	result.Meta.Elapsed = time.Since(started)

	p.results.Put(result)
	if p.auditq != nil {
		p.auditq.Enqueue(model.AuditRecord{
			ResponseID:     response.ID,
			RequestID:      result.Meta.RequestID,
			OverallQuality: result.OverallQuality,
			RiskLevel:      result.RiskLevel,
			Recommendation: result.Recommendation,
			Issues:         result.Issues,
			Timestamp:      result.Meta.Timestamp,
		})
	}
}

// catastrophic is the synthetic result for a failure that escaped every
// stage wrapper.
func (p *Pipeline) catastrophic(response model.Response, opts model.Options, msg string) *model.AggregateResult {
	return &model.AggregateResult{
		Meta: model.ResultMeta{
			RequestID:       uuid.NewString(),
			ResponseID:      response.ID,
			Timestamp:       time.Now().UTC(),
			ValidationLevel: opts.ValidationLevel,
		},
		OverallQuality: 0,
		RiskLevel:      model.RiskCritical,
		Recommendation: model.RecommendReject,
		Issues: []model.Issue{{
			Stage:    stageSystem,
			Severity: model.IssueCritical,
			Message:  "evaluation aborted: " + msg,
		}},
	}
}

// normalize fills option defaults from configuration.
func (p *Pipeline) normalize(opts model.Options) model.Options {
	if opts.ValidationLevel == "" {
		opts.ValidationLevel = p.cfg.Pipeline.Level
	}
	if opts.ValidationLevel == "" {
		opts.ValidationLevel = model.LevelStandard
	}
	if opts.Threshold <= 0 {
		opts.Threshold = p.cfg.Pipeline.Threshold
	}
	if opts.MaxProcessingTime <= 0 {
		opts.MaxProcessingTime = p.cfg.Pipeline.MaxProcessingTime
	}
	return opts
}

// recommendationsFor collects actionable suggestions from every stage,
// de-duplicated in order.
func recommendationsFor(result *model.AggregateResult) []string {
	seen := make(map[string]bool)
	var recs []string
	add := func(r string) {
		if !seen[r] {
			seen[r] = true
			recs = append(recs, r)
		}
	}

	if v := result.Validation; v != nil && !v.IsValid {
		add("revise the response content before serving it")
	}
	if fc := result.FactCheck; fc != nil {
		if fc.UnverifiedClaims > 0 {
			add("verify unsupported claims against the knowledge base")
		}
		if fc.DisputedClaims > 0 {
			add("review disputed claims with a subject expert")
		}
	}
	if conf := result.Confidence; conf != nil {
		for _, f := range conf.UncertaintyFactors {
			add("address uncertainty factor: " + f.Type)
		}
	}
	if cd := result.Contradictions; cd != nil {
		for _, c := range cd.Contradictions {
			add(fmt.Sprintf("%s (%s %s contradiction)", c.Resolution.Action, c.Severity, c.Type))
		}
	}
	return recs
}

// stageFailure converts an isolated stage error into an issue entry.
func stageFailure(stage string, err error) model.Issue {
	return model.Issue{
		Stage:    stage,
		Severity: model.IssueCritical,
		Message:  err.Error(),
	}
}

// verificationLevel maps the pipeline validation level onto the fact
// checker's depth setting.
func verificationLevel(level model.ValidationLevel) model.VerificationLevel {
	switch level {
	case model.LevelBasic:
		return model.VerifyBasic
	case model.LevelEnhanced:
		return model.VerifyEnhanced
	default:
		return model.VerifyStandard
	}
}
