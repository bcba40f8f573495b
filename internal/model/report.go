package model

import "time"

// Report is the complete output of one extraction run.
type Report struct {
	Subject     string    `json:"subject"`
	Source      string    `json:"source"` // file path, URL, or "inline"
	ExtractedAt time.Time `json:"extracted_at"`

	Stats Stats `json:"stats"`

	// Requirements in scorer order (highest relevance first).
	Requirements []ClassifiedRequirement `json:"requirements"`

	// Formatted requirement text, regrouped Customer -> Administrator -> System.
	Formatted []string `json:"formatted"`
}

// Stats counts how much of the input survived each stage.
type Stats struct {
	Sentences    int `json:"sentences"`  // sentences after the length filter
	Candidates   int `json:"candidates"` // candidates above the score threshold
	Requirements int `json:"requirements"`
}
