package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SpacyEngine talks to a spaCy REST sidecar. The sidecar is expected to
// expose POST /split and POST /parse accepting {"text": ...} and returning
// the sentence list and Doc schema below. Head indexes and chunk roots
// follow the spaCy convention; prepositional objects may therefore attach
// to the preposition rather than the verb, which only reduces the number of
// SVO triples downstream.
type SpacyEngine struct {
	baseURL    string
	httpClient *http.Client
}

type spacyRequest struct {
	Text string `json:"text"`
}

type spacySplitResponse struct {
	Sentences []string `json:"sentences"`
}

type spacyError struct {
	Error string `json:"error"`
}

// NewSpacyEngine creates a sidecar-backed engine.
func NewSpacyEngine(config Config) (*SpacyEngine, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:8090"
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &SpacyEngine{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Segment splits text into sentences via the sidecar.
func (e *SpacyEngine) Segment(ctx context.Context, text string) ([]string, error) {
	var resp spacySplitResponse
	if err := e.post(ctx, "/split", text, &resp); err != nil {
		return nil, fmt.Errorf("spacy split: %w", err)
	}
	return resp.Sentences, nil
}

// Parse analyzes a single sentence via the sidecar.
func (e *SpacyEngine) Parse(ctx context.Context, sentence string) (*Doc, error) {
	var doc Doc
	if err := e.post(ctx, "/parse", sentence, &doc); err != nil {
		return nil, fmt.Errorf("spacy parse: %w", err)
	}
	if err := validateDoc(&doc); err != nil {
		return nil, fmt.Errorf("spacy parse: malformed document: %w", err)
	}
	if doc.Text == "" {
		doc.Text = sentence
	}
	return &doc, nil
}

func (e *SpacyEngine) post(ctx context.Context, path string, text string, out interface{}) error {
	payload, err := json.Marshal(spacyRequest{Text: text})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4_000_000))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr spacyError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("sidecar error (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
