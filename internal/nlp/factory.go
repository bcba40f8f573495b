package nlp

import (
	"fmt"
	"strings"
)

// Config holds engine provider configuration.
type Config struct {
	// Provider name: "rule", "spacy", "openai"
	Provider string

	// BaseURL for the spacy sidecar or a custom OpenAI-compatible endpoint
	BaseURL string

	// Model name (openai provider)
	Model string

	// APIKey (openai provider)
	APIKey string

	// Timeout for remote requests, in seconds
	Timeout int
}

// NewEngine creates an analysis engine based on configuration.
func NewEngine(config Config) (Engine, error) {
	switch strings.ToLower(config.Provider) {
	case "", "rule":
		return NewRuleEngine(), nil

	case "spacy":
		return NewSpacyEngine(config)

	case "openai":
		return NewOpenAIEngine(config)

	default:
		return nil, fmt.Errorf("unknown engine provider: %s (supported: rule, spacy, openai)", config.Provider)
	}
}
