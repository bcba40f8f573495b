package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/reqsift/reqsift/internal/model"
)

// Renderer writes reports to JSON, Markdown, and stdout.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report as indented JSON.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes the report as a Markdown document with one section
// per stakeholder group.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Requirements: %s\n\n", report.Subject)
	fmt.Fprintf(&b, "Source: %s\n\n", report.Source)
	fmt.Fprintf(&b, "Extracted: %s\n\n", report.ExtractedAt.Format("2006-01-02 15:04 UTC"))
	fmt.Fprintf(&b, "Sentences analyzed: %d · candidates: %d · requirements: %d\n\n",
		report.Stats.Sentences, report.Stats.Candidates, report.Stats.Requirements)

	for _, stakeholder := range []string{
		model.StakeholderCustomer,
		model.StakeholderAdministrator,
		model.StakeholderSystem,
	} {
		var rows []model.ClassifiedRequirement
		for _, req := range report.Requirements {
			if req.Stakeholder == stakeholder {
				rows = append(rows, req)
			}
		}
		if len(rows) == 0 {
			continue
		}

		fmt.Fprintf(&b, "## %s\n\n", stakeholder)
		for _, req := range rows {
			fmt.Fprintf(&b, "- %s _(%s; %s)_\n", req.Requirement, req.Type,
				strings.Join(req.Categories, ", "))
		}
		b.WriteString("\n")
	}

	if len(report.Requirements) == 0 {
		b.WriteString("_No requirements extracted._\n\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by reqsift. Heuristic first-pass draft; review before use.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderSummary prints the grouped requirement list to stdout, one numbered
// line per requirement.
func (r *Renderer) RenderSummary(report *model.Report) {
	for i, text := range report.Formatted {
		fmt.Printf("%d. %s\n", i+1, text)
	}
}
