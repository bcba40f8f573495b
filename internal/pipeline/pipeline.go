// Package pipeline orchestrates the requirement extraction stages.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/reqsift/reqsift/internal/cache"
	"github.com/reqsift/reqsift/internal/classify"
	"github.com/reqsift/reqsift/internal/extract"
	"github.com/reqsift/reqsift/internal/formulate"
	"github.com/reqsift/reqsift/internal/model"
	"github.com/reqsift/reqsift/internal/nlp"
	"github.com/reqsift/reqsift/internal/refine"
	"github.com/reqsift/reqsift/internal/score"
	"github.com/reqsift/reqsift/internal/segment"
	"github.com/reqsift/reqsift/internal/util"
)

// Extractor runs the six-stage extraction pipeline. The engine handle is
// shared read-only across requests; everything else is request-local.
type Extractor struct {
	engine     nlp.Engine
	segmenter  *segment.Segmenter
	features   *extract.FeatureExtractor
	scorer     *score.Scorer
	formulator *formulate.Formulator
	refiner    *refine.Refiner
	classifier *classify.Classifier

	fetcher  *Fetcher
	robots   *util.RobotsChecker
	renderer *Renderer
	config   *model.Config
}

// NewExtractor creates a pipeline from configuration. The engine is built
// once and wrapped with the parse cache when caching is enabled.
func NewExtractor(cfg *model.Config) (*Extractor, error) {
	engine, err := nlp.NewEngine(nlp.Config{
		Provider: cfg.Engine.Provider,
		BaseURL:  cfg.Engine.BaseURL,
		Model:    cfg.Engine.Model,
		APIKey:   cfg.Engine.APIKey,
		Timeout:  cfg.Engine.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	if cfg.Cache.Enabled {
		store := cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		engine = nlp.NewCachedEngine(engine, store, cfg.Cache.DiskTTL)
	}

	return &Extractor{
		engine:     engine,
		segmenter:  segment.NewSegmenter(engine),
		features:   extract.NewFeatureExtractor(engine),
		scorer:     score.NewScorer(),
		formulator: formulate.NewFormulator(),
		refiner:    refine.NewRefiner(),
		classifier: classify.NewClassifier(),
		fetcher:    NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes),
		robots:     util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout),
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		config:     cfg,
	}, nil
}

// ExtractRequirements runs all six stages and returns the classified
// requirements in scorer order. An empty or unproductive description yields
// an empty list, not an error; engine failures propagate.
func (e *Extractor) ExtractRequirements(ctx context.Context, description string) ([]model.ClassifiedRequirement, error) {
	reqs, _, err := e.run(ctx, description)
	return reqs, err
}

// ExtractAndFormat runs the pipeline and returns only requirement text,
// regrouped Customer, Administrator, then System.
func (e *Extractor) ExtractAndFormat(ctx context.Context, description string) ([]string, error) {
	reqs, _, err := e.run(ctx, description)
	if err != nil {
		return nil, err
	}
	return formatGrouped(reqs), nil
}

// ExtractReport runs the pipeline and wraps the result in a report.
func (e *Extractor) ExtractReport(ctx context.Context, subject, source, description string) (*model.Report, error) {
	reqs, stats, err := e.run(ctx, description)
	if err != nil {
		return nil, err
	}

	return &model.Report{
		Subject:      subject,
		Source:       source,
		ExtractedAt:  time.Now().UTC(),
		Stats:        stats,
		Requirements: reqs,
		Formatted:    formatGrouped(reqs),
	}, nil
}

// ScanURL fetches a page, extracts its visible text, and runs the pipeline
// over it. robots.txt is consulted first; a disallow is an error, and any
// crawl delay is honored.
func (e *Extractor) ScanURL(ctx context.Context, rawURL string) (*model.Report, error) {
	allowed, crawlDelay, err := e.robots.CanFetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("robots check: %w", err)
	}
	if !allowed {
		return nil, fmt.Errorf("robots.txt disallows fetching %s", rawURL)
	}
	if crawlDelay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(crawlDelay):
		}
	}

	fetched, err := e.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	return e.ExtractReport(ctx, fetched.Subject, fetched.FinalURL, fetched.Text)
}

// ExtractSource dispatches a batch source: URLs are scanned, anything else
// is read as a local text file.
func (e *Extractor) ExtractSource(ctx context.Context, source string) (*model.Report, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return e.ScanURL(ctx, source)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("read description: %w", err)
	}
	return e.ExtractReport(ctx, source, source, string(data))
}

// Renderer returns the report renderer configured for this pipeline.
func (e *Extractor) Renderer() *Renderer {
	return e.renderer
}

func (e *Extractor) run(ctx context.Context, description string) ([]model.ClassifiedRequirement, model.Stats, error) {
	var stats model.Stats

	sentences, err := e.segmenter.Split(ctx, description)
	if err != nil {
		return nil, stats, err
	}
	stats.Sentences = len(sentences)
	if len(sentences) == 0 {
		return nil, stats, nil
	}

	records, err := e.features.ExtractAll(ctx, sentences)
	if err != nil {
		return nil, stats, err
	}

	candidates := e.scorer.Rank(records)
	stats.Candidates = len(candidates)

	drafts := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		drafts = append(drafts, e.formulator.Formulate(candidate))
	}

	refined := e.refiner.Refine(drafts)

	reqs := e.classifier.ClassifyAll(refined)
	stats.Requirements = len(reqs)
	return reqs, stats, nil
}

func formatGrouped(reqs []model.ClassifiedRequirement) []string {
	grouped := classify.GroupByStakeholder(reqs)
	out := make([]string, 0, len(grouped))
	for _, req := range grouped {
		out = append(out, req.Requirement)
	}
	return out
}
