package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/reqsift/reqsift/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	scanTimeout time.Duration
	userAgent   string
	maxBytes    int64
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <url>",
	Short: "Extract requirements from a web page",
	Long: `Scan fetches a web page, strips it to visible text, and runs the
extraction pipeline over the result. robots.txt is respected: disallowed
pages are refused and crawl delays are honored.

Example:
  reqsift scan https://example.com/product-brief
  reqsift scan https://example.com/spec --json report.json --md report.md`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	scanCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 2*time.Minute, "overall scan timeout")
	scanCmd.Flags().StringVar(&userAgent, "ua", "Reqsift/0.1 (+https://github.com/reqsift/reqsift)", "HTTP User-Agent")
	scanCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	scanCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable parse cache")
	scanCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	addEngineFlags(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.HTTP.Timeout = scanTimeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes

	if verbose {
		fmt.Fprintf(os.Stderr, "Scanning: %s\n", url)
		fmt.Fprintf(os.Stderr, "Engine: %s\n", cfg.Engine.Provider)
		fmt.Fprintln(os.Stderr)
	}

	extractor, err := pipeline.NewExtractor(cfg)
	if err != nil {
		return err
	}

	report, err := extractor.ScanURL(ctx, url)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	return renderReport(extractor.Renderer(), report)
}
