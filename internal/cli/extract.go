package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/reqsift/reqsift/internal/model"
	"github.com/reqsift/reqsift/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON        string
	outMD          string
	extractTimeout time.Duration
	noCache        bool
	noFooter       bool
	engineProvider string
	engineBaseURL  string
	engineModel    string
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract requirements from a description file (or - for stdin)",
	Long: `Extract runs the full pipeline over a plain-text system description:
- Split the text into candidate sentences
- Derive linguistic features per sentence (verbs, modals, SVO triples)
- Score and rank requirement candidates
- Formulate, refine, and classify requirements
- Print the result grouped by stakeholder

Example:
  reqsift extract description.txt
  reqsift extract description.txt --json report.json --md report.md
  cat description.txt | reqsift extract - --engine spacy`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	extractCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	extractCmd.Flags().DurationVar(&extractTimeout, "timeout", 2*time.Minute, "overall extraction timeout")
	extractCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable parse cache")
	extractCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	addEngineFlags(extractCmd)
}

func addEngineFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&engineProvider, "engine", "rule", "analysis engine (rule, spacy, openai)")
	cmd.Flags().StringVar(&engineBaseURL, "engine-url", "", "base URL for the spacy sidecar or custom endpoint")
	cmd.Flags().StringVar(&engineModel, "engine-model", "", "model name for the openai engine")
}

// buildConfig assembles runtime configuration from defaults and flags.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Engine.Provider = engineProvider
	cfg.Engine.BaseURL = engineBaseURL
	cfg.Engine.Model = engineModel
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if strings.EqualFold(engineProvider, "openai") {
		cfg.Engine.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.Engine.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}
	return cfg, nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), extractTimeout)
	defer cancel()

	description, subject, err := readDescription(input)
	if err != nil {
		return err
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Engine: %s\n", cfg.Engine.Provider)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	extractor, err := pipeline.NewExtractor(cfg)
	if err != nil {
		return err
	}

	report, err := extractor.ExtractReport(ctx, subject, input, description)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	return renderReport(extractor.Renderer(), report)
}

func readDescription(input string) (description, subject string, err error) {
	if input == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "stdin", nil
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return "", "", fmt.Errorf("read description: %w", err)
	}
	subject = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return string(data), subject, nil
}

func renderReport(renderer *pipeline.Renderer, report *model.Report) error {
	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}

	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
		}
	}

	renderer.RenderSummary(report)
	return nil
}
