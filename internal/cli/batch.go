package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/credence/internal/pipeline"
	"github.com/ppiankov/credence/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>...",
	Short: "Evaluate multiple response files in parallel",
	Long: `Batch evaluates many response files concurrently:
- Accepts individual JSON files or directories of them
- Processes files in parallel with a configurable worker count
- Each evaluation runs the full pipeline with shared caches
- Writes one report per input file

Example:
  credence batch responses/
  credence batch r1.json r2.json --concurrency 10 --output-dir ./reports
  credence batch responses/ --level enhanced --timeout 5m`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./credence-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Shared pipeline flags
	batchCmd.Flags().StringVar(&level, "level", "standard", "validation level (basic, standard, enhanced)")
	batchCmd.Flags().BoolVar(&strictMode, "strict", false, "reject immediately when surface validation fails")
	batchCmd.Flags().Float64Var(&threshold, "threshold", 0.5, "minimum contradiction score to report")
	batchCmd.Flags().DurationVar(&maxTime, "max-time", 0, "hard deadline per evaluation (0 disables)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the per-claim verification cache")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	batchCmd.Flags().StringVar(&auditFile, "audit-file", "", "append audit records to this JSONL file")
}

func runBatch(cmd *cobra.Command, args []string) error {
	paths, err := collectPaths(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no input files found")
	}

	cfg, opts, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "Input files: %d\n", len(paths))
	fmt.Fprintf(os.Stderr, "Workers:     %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "Output dir:  %s\n\n", outputDir)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p := pipeline.NewPipeline(cfg)
	p.Start()
	defer p.Stop()

	processor := worker.NewBatchProcessor(p, concurrency, opts)
	results := processor.ProcessFiles(ctx, paths)

	renderer := pipeline.NewRenderer(!noFooter)
	successCount := 0
	failureCount := 0
	for _, r := range results {
		if r.Err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", r.Path, r.Err)
			continue
		}
		successCount++

		slug := sanitizeFilename(r.Result.Meta.ResponseID)
		jsonPath := filepath.Join(outputDir, slug+".json")
		if err := renderer.RenderJSON(r.Result, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: render: %v\n", r.Path, err)
			continue
		}
		fmt.Fprintf(os.Stderr, "OK   %s -> %s [%s]\n", r.Path, jsonPath, r.Result.Recommendation)
	}

	fmt.Fprintf(os.Stderr, "\nDone: %d succeeded, %d failed\n", successCount, failureCount)
	if failureCount > 0 {
		return fmt.Errorf("%d of %d evaluations failed", failureCount, len(results))
	}
	return nil
}

// collectPaths expands directory arguments into their JSON files.
func collectPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("read dir %s: %w", arg, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}
			paths = append(paths, filepath.Join(arg, entry.Name()))
		}
	}
	return paths, nil
}

// sanitizeFilename makes a response ID safe to use as a file name.
func sanitizeFilename(name string) string {
	if name == "" {
		return "result"
	}
	replacer := strings.NewReplacer("/", "-", "\\", "-", ":", "-", "*", "-", "?", "-", "\"", "-", "<", "-", ">", "-", "|", "-", " ", "_")
	return replacer.Replace(name)
}
