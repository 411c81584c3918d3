package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ppiankov/credence/internal/model"
)

// Evaluator is the pipeline surface the batch processor needs.
type Evaluator interface {
	Evaluate(ctx context.Context, response model.Response, ectx model.Context, opts model.Options) *model.AggregateResult
}

// BatchItem is one response file queued for evaluation.
type BatchItem struct {
	Path     string
	Response model.Response `json:"response"`
	Context  model.Context  `json:"context"`
}

// BatchResult pairs an input file with its evaluation outcome.
type BatchResult struct {
	Path   string
	Result *model.AggregateResult
	Err    error
}

// GetError satisfies the pool's Result interface.
func (r BatchResult) GetError() error { return r.Err }

// BatchProcessor evaluates many response files concurrently.
type BatchProcessor struct {
	evaluator Evaluator
	workers   int
	opts      model.Options
}

// NewBatchProcessor creates a processor using the given evaluator.
func NewBatchProcessor(evaluator Evaluator, workers int, opts model.Options) *BatchProcessor {
	if workers <= 0 {
		workers = 1
	}
	return &BatchProcessor{evaluator: evaluator, workers: workers, opts: opts}
}

type evalJob struct {
	processor *BatchProcessor
	item      BatchItem
	ctx       context.Context // Batch-level deadline, carried past the pool
}

// Execute runs one evaluation; load errors become failed results rather
// than aborting the batch.
func (j evalJob) Execute(_ context.Context) Result {
	return BatchResult{
		Path:   j.item.Path,
		Result: j.processor.evaluator.Evaluate(j.ctx, j.item.Response, j.item.Context, j.processor.opts),
	}
}

// ProcessFiles evaluates every file through the worker pool. Submission
// runs concurrently with collection so batches larger than the pool's
// channel buffers cannot wedge.
func (p *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []BatchResult {
	pool := NewPool(p.workers)
	pool.Start()

	loadFailures := make([]BatchResult, 0)
	var items []BatchItem
	for _, path := range paths {
		item, err := LoadItem(path)
		if err != nil {
			loadFailures = append(loadFailures, BatchResult{Path: path, Err: err})
			continue
		}
		items = append(items, item)
	}

	go func() {
		for _, item := range items {
			pool.Submit(evalJob{processor: p, item: item, ctx: ctx})
		}
		pool.Close()
	}()

	results := loadFailures
	for _, r := range pool.Collect() {
		if br, ok := r.(BatchResult); ok {
			results = append(results, br)
		}
	}
	return results
}

// LoadItem reads one evaluation request from a JSON file holding the
// response and its context.
func LoadItem(path string) (BatchItem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return BatchItem{}, fmt.Errorf("read %s: %w", path, err)
	}
	var item BatchItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return BatchItem{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if item.Response.ID == "" {
		return BatchItem{}, fmt.Errorf("parse %s: response id is required", path)
	}
	item.Path = path
	return item, nil
}
