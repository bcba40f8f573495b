// Package score ranks feature records by requirement likelihood.
package score

import (
	"sort"
	"strings"

	"github.com/reqsift/reqsift/internal/model"
)

// Scoring weights. The formula is a fixed linear heuristic, not a trained
// model; weights, lexicons, and the threshold must stay in sync to keep
// output parity across versions.
const (
	ActionVerbWeight = 2
	ModalWeight      = 3
	SVOWeight        = 2

	RequirementKeywordBonus = 3
	ComponentBonus          = 2
	RoleBonus               = 2

	// Threshold a record's score must exceed to survive.
	Threshold = 3
)

// RequirementKeywords often indicate a requirement regardless of structure.
var RequirementKeywords = []string{
	"need", "require", "must", "should", "allow", "enable", "access",
	"view", "book", "reserve",
}

// ComponentLexicon lists system components worth requirements.
var ComponentLexicon = []string{
	"machine", "payment", "reservation", "notification", "camera",
	"account", "feedback", "review",
}

// RoleLexicon lists user roles.
var RoleLexicon = []string{
	"customer", "client", "user", "administrator", "owner",
}

// Scorer assigns heuristic relevance scores and ranks candidates.
type Scorer struct{}

// NewScorer creates a new scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score computes the relevance score for one feature record.
func (s *Scorer) Score(rec *model.FeatureRecord) int {
	score := 0

	if len(rec.ActionVerbs) > 0 {
		score += len(rec.ActionVerbs) * ActionVerbWeight
	}
	if len(rec.Modals) > 0 {
		score += len(rec.Modals) * ModalWeight
	}
	if len(rec.SVOPatterns) > 0 {
		score += len(rec.SVOPatterns) * SVOWeight
	}

	lower := strings.ToLower(rec.Sentence)
	if containsAny(lower, RequirementKeywords) {
		score += RequirementKeywordBonus
	}
	if containsAny(lower, ComponentLexicon) {
		score += ComponentBonus
	}
	if containsAny(lower, RoleLexicon) {
		score += RoleBonus
	}

	return score
}

// Rank scores all records, drops those at or below the threshold, and sorts
// the rest descending by score. The sort is stable: extraction order breaks
// ties.
func (s *Scorer) Rank(records []*model.FeatureRecord) []model.ScoredCandidate {
	var candidates []model.ScoredCandidate
	for _, rec := range records {
		if sc := s.Score(rec); sc > Threshold {
			candidates = append(candidates, model.ScoredCandidate{
				FeatureRecord: rec,
				Score:         sc,
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
