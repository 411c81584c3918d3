package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/credence/internal/confidence"
	"github.com/ppiankov/credence/internal/llm"
	"github.com/ppiankov/credence/internal/model"
	"github.com/ppiankov/credence/internal/pipeline"
	"github.com/ppiankov/credence/internal/source"
	"github.com/ppiankov/credence/internal/worker"
)

var (
	outJSON      string
	outMD        string
	level        string
	strictMode   bool
	threshold    float64
	maxTime      time.Duration
	noCache      bool
	noFooter     bool
	fetchSources bool
	auditFile    string
	skipFacts    bool
	skipConf     bool
	skipContra   bool
	suggest      bool
	llmEnabled   bool
	llmProvider  string
	llmModel     string
)

// evaluateCmd represents the evaluate command
var evaluateCmd = &cobra.Command{
	Use:   "evaluate <file>",
	Short: "Evaluate a single response file and generate a quality report",
	Long: `Evaluate runs the full assessment pipeline on one response:
- Validate surface quality (length, banned terms)
- Extract claims and entities
- Verify claims against the provided context
- Score confidence across five dimensions
- Detect contradictions within the response and against the context
- Fuse everything into an accept/review/reject recommendation

The input file is JSON holding a "response" and an optional "context":
  {"response": {"id": "r1", "content": "..."},
   "context": {"knowledge_base": [...], "external_sources": [...]}}

Example:
  credence evaluate response.json
  credence evaluate response.json --level enhanced --json report.json
  credence evaluate response.json --strict --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	// Output flags
	evaluateCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	evaluateCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	evaluateCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Pipeline flags
	evaluateCmd.Flags().StringVar(&level, "level", "standard", "validation level (basic, standard, enhanced)")
	evaluateCmd.Flags().BoolVar(&strictMode, "strict", false, "reject immediately when surface validation fails")
	evaluateCmd.Flags().Float64Var(&threshold, "threshold", 0.5, "minimum contradiction score to report")
	evaluateCmd.Flags().DurationVar(&maxTime, "max-time", 0, "hard evaluation deadline (0 disables)")
	evaluateCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the per-claim verification cache")
	evaluateCmd.Flags().BoolVar(&skipFacts, "skip-facts", false, "skip the fact-checking stage")
	evaluateCmd.Flags().BoolVar(&skipConf, "skip-confidence", false, "skip the confidence-scoring stage")
	evaluateCmd.Flags().BoolVar(&skipContra, "skip-contradictions", false, "skip the contradiction-detection stage")

	// Context flags
	evaluateCmd.Flags().BoolVar(&fetchSources, "fetch-sources", false, "download external source URLs before checking")
	evaluateCmd.Flags().StringVar(&auditFile, "audit-file", "", "append audit records to this JSONL file")
	evaluateCmd.Flags().BoolVar(&suggest, "suggest", false, "print coherence breakdown and follow-up questions")

	// LLM flags
	evaluateCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM explanation of the verdict")
	evaluateCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	evaluateCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	item, err := worker.LoadItem(args[0])
	if err != nil {
		return fmt.Errorf("load request: %w", err)
	}

	cfg, opts, err := buildConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()

	if fetchSources {
		fetcher := source.NewFetcher(cfg.HTTP, cfg.RateLimiting)
		for _, fetchErr := range fetcher.Hydrate(ctx, &item.Context) {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", fetchErr)
		}
	}

	p := pipeline.NewPipeline(cfg)
	p.Start()
	defer p.Stop()

	if verbose {
		fmt.Fprintf(os.Stderr, "Evaluating: %s (level %s)\n\n", item.Response.ID, opts.ValidationLevel)
	}

	result := p.Evaluate(ctx, item.Response, item.Context, opts)

	renderer := pipeline.NewRenderer(!noFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(result, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(result, outMD); err != nil {
			return fmt.Errorf("render Markdown: %w", err)
		}
	}
	renderer.RenderSummary(result)

	if suggest && result.Confidence != nil {
		scorer := confidence.NewScorer(cfg.Confidence)
		coh := scorer.EvaluateCoherence(item.Response.Content)
		fmt.Printf("\nCoherence: %.2f (logical %.2f, structural %.2f, consistency %.2f, flow %.2f)\n",
			coh.Overall, coh.Logical, coh.Structural, coh.Consistency, coh.Flow)
		fmt.Println("Suggested follow-ups:")
		for _, q := range scorer.SuggestFollowUps(*result.Confidence, 3) {
			fmt.Printf("  - %s\n", q.Question)
		}
	}

	if llmEnabled {
		if err := explainResult(ctx, cfg, result); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: explanation failed: %v\n", err)
		}
	}

	return nil
}

// buildConfig assembles the run configuration and options from the loaded
// config file plus flags.
func buildConfig() (*model.Config, model.Options, error) {
	cfg := loadConfig()

	validationLevel := model.ValidationLevel(level)
	switch validationLevel {
	case model.LevelBasic, model.LevelStandard, model.LevelEnhanced:
	default:
		return nil, model.Options{}, fmt.Errorf("unknown validation level: %s (supported: basic, standard, enhanced)", level)
	}

	cfg.Pipeline.Level = validationLevel
	cfg.Pipeline.StrictMode = strictMode
	cfg.Pipeline.Threshold = threshold
	cfg.Pipeline.MaxProcessingTime = maxTime
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if auditFile != "" {
		cfg.Audit.Enabled = true
		cfg.Audit.File = auditFile
	}

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, model.Options{}, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	opts := model.Options{
		ValidationLevel:               validationLevel,
		IncludeFactChecking:           !skipFacts,
		IncludeConfidenceScoring:      !skipConf,
		IncludeContradictionDetection: !skipContra,
		Threshold:                     threshold,
		MaxProcessingTime:             maxTime,
	}
	return cfg, opts, nil
}

// explainResult asks the configured LLM provider to restate the verdict.
// The explanation is printed after the summary and never changes the result.
func explainResult(ctx context.Context, cfg *model.Config, result *model.AggregateResult) error {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM, cfg.HTTP))
	if err != nil {
		return err
	}
	if provider == nil {
		return nil
	}
	if !provider.IsAvailable(ctx) {
		return fmt.Errorf("provider %s is not available", provider.Name())
	}

	resp, err := provider.Explain(ctx, llm.ExplainRequest{Result: result})
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Explanation:")
	fmt.Println(resp.Explanation)
	if verbose {
		fmt.Fprintf(os.Stderr, "\nExplained by %s/%s (%d tokens)\n", provider.Name(), resp.Model, resp.TokensUsed)
	}
	return nil
}
