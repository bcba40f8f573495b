package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/reqsift/reqsift/internal/model"
)

// Runner runs the extraction pipeline over one source (URL or local file).
type Runner interface {
	ExtractSource(ctx context.Context, source string) (*model.Report, error)
}

// ExtractJob extracts requirements from a single source.
type ExtractJob struct {
	Source  string
	Runner  Runner
	Limiter *Limiter
}

// Execute runs the job. URL sources wait for per-domain rate-limit
// clearance first.
func (j *ExtractJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil && isURL(j.Source) {
		if err := j.Limiter.Wait(ctx, j.Source); err != nil {
			return &ExtractResult{Source: j.Source, Error: err}
		}
	}

	report, err := j.Runner.ExtractSource(ctx, j.Source)
	if err != nil {
		return &ExtractResult{Source: j.Source, Error: err}
	}
	return &ExtractResult{Source: j.Source, Report: report}
}

// ExtractResult is the outcome of one extraction job.
type ExtractResult struct {
	Source string
	Report *model.Report
	Error  error
}

// GetError returns the job's error, if any.
func (r *ExtractResult) GetError() error {
	return r.Error
}

// BatchProcessor extracts requirements from multiple sources concurrently.
type BatchProcessor struct {
	runner      Runner
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a batch processor. A zero requestsPerSecond
// disables rate limiting.
func NewBatchProcessor(runner Runner, concurrency int, requestsPerSecond float64, burst int) *BatchProcessor {
	var limiter *Limiter
	if requestsPerSecond > 0 {
		limiter = NewLimiter(requestsPerSecond, burst)
	}

	return &BatchProcessor{
		runner:      runner,
		concurrency: concurrency,
		limiter:     limiter,
	}
}

// ProcessSources runs the pipeline over every source concurrently.
func (b *BatchProcessor) ProcessSources(ctx context.Context, sources []string) []*ExtractResult {
	if len(sources) == 0 {
		return []*ExtractResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, source := range sources {
		pool.Submit(&ExtractJob{
			Source:  source,
			Runner:  b.runner,
			Limiter: b.limiter,
		})
	}

	results := pool.Wait()

	extractResults := make([]*ExtractResult, len(results))
	for i, result := range results {
		extractResults[i] = result.(*ExtractResult)
	}
	return extractResults
}

// ProcessFile reads sources from a file (one per line) and processes them.
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*ExtractResult, error) {
	sources, err := ReadSourcesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read sources: %w", err)
	}
	return b.ProcessSources(ctx, sources), nil
}

// ReadSourcesFromFile reads sources from a file, one per line. Blank lines
// and # comments are skipped; duplicates are dropped.
func ReadSourcesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var sources []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			sources = append(sources, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return sources, nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
