package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/reqsift/reqsift/internal/cache"
	"github.com/reqsift/reqsift/internal/pipeline"
	"github.com/reqsift/reqsift/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	batchRPS     float64
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Extract requirements from multiple sources in parallel",
	Long: `Batch processes multiple sources concurrently:
- Read sources from an input file (one per line)
- A source is either a URL (fetched and scanned) or a local text file
- URL fetches are rate limited per domain
- One JSON report is written per source

Example:
  reqsift batch sources.txt
  reqsift batch sources.txt --concurrency 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./reqsift-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().Float64Var(&batchRPS, "rps", 2, "max requests per second per domain for URL sources")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable parse cache")

	addEngineFlags(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.BatchWorkers = concurrency
	cfg.Concurrency.RequestsPerSecond = batchRPS

	fmt.Fprintf(os.Stderr, "Batch input:  %s\n", file)
	fmt.Fprintf(os.Stderr, "Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "Output dir:   %s\n", outputDir)
	fmt.Fprintln(os.Stderr)

	extractor, err := pipeline.NewExtractor(cfg)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(extractor, cfg.Concurrency.BatchWorkers,
		cfg.Concurrency.RequestsPerSecond, cfg.Concurrency.Burst)

	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	succeeded, failed := 0, 0
	renderer := extractor.Renderer()
	for _, result := range results {
		if result.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Source, result.Error)
			continue
		}

		path := filepath.Join(outputDir, reportFileName(result.Source))
		if err := renderer.RenderJSON(result.Report, path); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Source, err)
			continue
		}

		succeeded++
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ %s → %s (%d requirements)\n",
				result.Source, path, len(result.Report.Requirements))
		}
	}

	fmt.Fprintf(os.Stderr, "\nDone: %d succeeded, %d failed\n", succeeded, failed)
	if failed > 0 && succeeded == 0 {
		return fmt.Errorf("all %d sources failed", failed)
	}
	return nil
}

// reportFileName derives a stable, filesystem-safe report name per source.
func reportFileName(source string) string {
	key := cache.Key("report", source)
	// Keep the tail of the hash; the prefix is constant.
	if len(key) > 16 {
		key = key[len(key)-16:]
	}
	return key + ".json"
}
