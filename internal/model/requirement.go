package model

import "github.com/reqsift/reqsift/internal/nlp"

// SVO is a (subject, verb, object) triple inferred from dependency structure.
// It signals an actor performing an action on a target.
type SVO struct {
	Subject string `json:"subject"`
	Verb    string `json:"verb"`
	Object  string `json:"object"`
}

// FeatureRecord holds the linguistic features derived from one sentence.
// The Doc handle is shared read-only with later stages so the formulator can
// re-query noun chunks without a second engine call.
type FeatureRecord struct {
	Sentence    string   `json:"sentence"`
	Verbs       []string `json:"verbs"`                  // verb lemmas, token order
	ActionVerbs []string `json:"action_verbs,omitempty"` // subset matching the action vocabulary
	Nouns       []string `json:"nouns"`                  // noun surface forms
	Entities    []string `json:"entities,omitempty"`     // named entity spans
	SVOPatterns []SVO    `json:"svo_patterns,omitempty"`
	Modals      []string `json:"modals,omitempty"` // modal auxiliary surface forms

	Doc *nlp.Doc `json:"-"`
}

// ScoredCandidate is a feature record that passed the relevance threshold.
type ScoredCandidate struct {
	*FeatureRecord
	Score int `json:"score"`
}

// ClassifiedRequirement is a refined requirement tagged with stakeholder,
// functional type, and feature categories.
type ClassifiedRequirement struct {
	Requirement string   `json:"requirement"`
	Stakeholder string   `json:"stakeholder"` // Customer, Administrator, System
	Type        string   `json:"type"`        // Functional, Non-functional
	Categories  []string `json:"categories"`  // never empty; defaults to ["General"]
}

// Stakeholder values.
const (
	StakeholderCustomer      = "Customer"
	StakeholderAdministrator = "Administrator"
	StakeholderSystem        = "System"
)

// Requirement type values.
const (
	TypeFunctional    = "Functional"
	TypeNonFunctional = "Non-functional"
)
