// Package classify tags refined requirements with stakeholder, type, and
// feature categories.
package classify

import (
	"strings"

	"github.com/reqsift/reqsift/internal/model"
)

// Stakeholder keyword sets. The customer check takes priority.
var (
	customerTerms = []string{"customer", "client", "user"}
	adminTerms    = []string{"administrator", "admin", "owner"}
)

// nonFunctionalTerms mark a requirement as non-functional.
var nonFunctionalTerms = []string{
	"performance", "security", "reliability", "usability", "maintainability",
}

// Category is one entry of the feature taxonomy.
type Category struct {
	Name     string
	Keywords []string
}

// Taxonomy is the fixed feature-category taxonomy, in declaration order.
var Taxonomy = []Category{
	{"Washing/Drying", []string{"machine", "washer", "dryer", "washing", "drying"}},
	{"Security", []string{"security", "camera", "monitor", "surveillance"}},
	{"Scheduling", []string{"schedule", "booking", "reservation", "book", "reserve"}},
	{"Payment", []string{"payment", "pay", "coin", "card", "credit", "debit"}},
	{"Reporting", []string{"report", "record", "track", "log"}},
	{"Communication", []string{"communicate", "notification", "alert", "message"}},
	{"Feedback", []string{"feedback", "review", "comment", "rating"}},
}

// DefaultCategory applies when no taxonomy keyword matches.
const DefaultCategory = "General"

// Classifier tags refined requirements.
type Classifier struct{}

// NewClassifier creates a new classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify tags one requirement with stakeholder, functional type, and a
// non-empty category set.
func (c *Classifier) Classify(requirement string) model.ClassifiedRequirement {
	lower := strings.ToLower(requirement)

	stakeholder := model.StakeholderSystem
	switch {
	case containsAny(lower, customerTerms):
		stakeholder = model.StakeholderCustomer
	case containsAny(lower, adminTerms):
		stakeholder = model.StakeholderAdministrator
	}

	reqType := model.TypeFunctional
	if containsAny(lower, nonFunctionalTerms) {
		reqType = model.TypeNonFunctional
	}

	var categories []string
	for _, cat := range Taxonomy {
		if containsAny(lower, cat.Keywords) {
			categories = append(categories, cat.Name)
		}
	}
	if len(categories) == 0 {
		categories = []string{DefaultCategory}
	}

	return model.ClassifiedRequirement{
		Requirement: requirement,
		Stakeholder: stakeholder,
		Type:        reqType,
		Categories:  categories,
	}
}

// ClassifyAll tags every requirement, preserving order.
func (c *Classifier) ClassifyAll(requirements []string) []model.ClassifiedRequirement {
	out := make([]model.ClassifiedRequirement, 0, len(requirements))
	for _, req := range requirements {
		out = append(out, c.Classify(req))
	}
	return out
}

// GroupByStakeholder partitions requirements into Customer, Administrator,
// then System groups, preserving within-group order, and concatenates them
// in that fixed order. Presentation only; the classification is unchanged.
func GroupByStakeholder(reqs []model.ClassifiedRequirement) []model.ClassifiedRequirement {
	grouped := make([]model.ClassifiedRequirement, 0, len(reqs))
	for _, stakeholder := range []string{
		model.StakeholderCustomer,
		model.StakeholderAdministrator,
		model.StakeholderSystem,
	} {
		for _, req := range reqs {
			if req.Stakeholder == stakeholder {
				grouped = append(grouped, req)
			}
		}
	}
	return grouped
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
