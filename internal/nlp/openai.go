package nlp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIEngine delegates linguistic analysis to a chat model, asking for the
// Doc schema as strict JSON. Useful when no spaCy sidecar is available and
// the rule engine's coverage is too narrow for the input.
type OpenAIEngine struct {
	client *openai.Client
	config Config
}

// NewOpenAIEngine creates an LLM-backed engine.
func NewOpenAIEngine(config Config) (*OpenAIEngine, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIEngine{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// IsAvailable checks if the provider is properly configured and reachable.
func (e *OpenAIEngine) IsAvailable(ctx context.Context) bool {
	_, err := e.client.ListModels(ctx)
	return err == nil
}

const segmentSystemPrompt = `You split English text into sentences.
Return ONLY valid JSON: {"sentences": ["sentence one.", "sentence two."]}.
Preserve the original wording and order exactly. No explanation.`

const parseSystemPrompt = `You are a dependency parser. Analyze ONE English sentence and return ONLY valid JSON:
{
  "text": "<the sentence>",
  "tokens": [{"index": 0, "text": "...", "lemma": "...", "pos": "...", "dep": "...", "head": 0}],
  "chunks": [{"start": 0, "end": 2, "root": 1}],
  "entities": [{"start": 0, "end": 1, "label": "ORG"}]
}
Rules:
- "pos" uses Universal Dependencies coarse tags (VERB, NOUN, AUX, DET, ADP, ...).
- "dep" uses spaCy labels (nsubj, dobj, pobj, aux, prep, det, ROOT, ...).
- "head" is the token index of the syntactic head; the root is its own head.
- "chunks" are noun chunks; "end" is exclusive; "root" indexes the head noun.
- Prepositional objects (pobj) must use the governing VERB as head.
Return ONLY the JSON, no explanation.`

type segmentPayload struct {
	Sentences []string `json:"sentences"`
}

// Segment splits text into sentences.
func (e *OpenAIEngine) Segment(ctx context.Context, text string) ([]string, error) {
	raw, err := e.complete(ctx, segmentSystemPrompt, text)
	if err != nil {
		return nil, fmt.Errorf("segment: %w", err)
	}

	var payload segmentPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("segment: decode response: %w", err)
	}
	return payload.Sentences, nil
}

// Parse analyzes a single sentence.
func (e *OpenAIEngine) Parse(ctx context.Context, sentence string) (*Doc, error) {
	raw, err := e.complete(ctx, parseSystemPrompt, sentence)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	var doc Doc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("parse: decode response: %w", err)
	}
	if err := validateDoc(&doc); err != nil {
		return nil, fmt.Errorf("parse: malformed document: %w", err)
	}
	if doc.Text == "" {
		doc.Text = sentence
	}
	return &doc, nil
}

func (e *OpenAIEngine) complete(ctx context.Context, system, user string) (string, error) {
	model := e.config.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	timeout := time.Duration(e.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := e.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
