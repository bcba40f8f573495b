// Package refine deduplicates and normalizes draft requirements.
package refine

import (
	"regexp"
	"strings"
)

// ApprovedLeads are the lead phrases a refined requirement may start with.
// Drafts outside the set get the system prefix.
var ApprovedLeads = []string{
	"the system shall",
	"the customer shall",
	"the customer should",
	"the administrator shall",
	"the administrator should",
}

// MinDraftWords is the word count a draft must exceed to survive at all.
const MinDraftWords = 4

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// fixups repair artifacts of template assembly.
var fixups = [][2]string{
	{" should be able to be able to ", " should be able to "},
	{" should should ", " should "},
	{" shall shall ", " shall "},
}

// Refiner deduplicates and normalizes drafts.
type Refiner struct{}

// NewRefiner creates a new refiner.
func NewRefiner() *Refiner {
	return &Refiner{}
}

// Refine keeps the first occurrence of each distinct draft (compared with
// all non-alphanumerics stripped, lowercased), drops short drafts, then
// normalizes lead phrase, terminal period, and common template artifacts.
// Order is preserved.
func (r *Refiner) Refine(drafts []string) []string {
	seen := make(map[string]bool)
	var unique []string
	for _, draft := range drafts {
		key := nonAlnum.ReplaceAllString(strings.ToLower(draft), "")
		if !seen[key] && len(strings.Fields(draft)) > MinDraftWords {
			seen[key] = true
			unique = append(unique, draft)
		}
	}

	var refined []string
	for _, draft := range unique {
		if !hasApprovedLead(draft) {
			draft = "The system shall " + draft
		}
		if !strings.HasSuffix(draft, ".") {
			draft += "."
		}
		for _, fix := range fixups {
			draft = strings.ReplaceAll(draft, fix[0], fix[1])
		}
		refined = append(refined, draft)
	}
	return refined
}

func hasApprovedLead(draft string) bool {
	lower := strings.ToLower(draft)
	for _, lead := range ApprovedLeads {
		if strings.HasPrefix(lower, lead) {
			return true
		}
	}
	return false
}
